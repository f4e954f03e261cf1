package registry

import "testing"

func TestSetGet(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("missing key should not exist")
	}
	r.SetGlobal("k", "v")
	v, ok := r.GetGlobal("k")
	if !ok || v != "v" {
		t.Errorf("GetGlobal = (%v, %v)", v, ok)
	}
}

func TestLock_PanicsOnWrite(t *testing.T) {
	r := NewRegistry()
	r.SetGlobal("k", 1)
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("IsLocked = false after Lock")
	}
	defer func() {
		if recover() == nil {
			t.Error("SetGlobal on locked key should panic")
		}
	}()
	r.SetGlobal("k", 2)
}

func TestUnlockForTesting(t *testing.T) {
	r := NewRegistry()
	r.Lock("k")
	r.UnlockForTesting("k")
	r.SetGlobal("k", "again")
	if v, _ := r.GetGlobal("k"); v != "again" {
		t.Errorf("value = %v", v)
	}
}
