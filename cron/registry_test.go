package cron

import (
	"testing"

	"buildmart.GO/core/registry"
)

func TestRegisterAndJobs(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer Unregister("testjob")

	ran := false
	Register("testjob", "@every 1h", func(args ...string) { ran = true })

	jobs := Jobs()
	j, ok := jobs["testjob"]
	if !ok {
		t.Fatal("testjob not registered")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("job func did not run")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer Unregister("dup")

	Register("dup", "@every 1h", func(args ...string) {})
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", "@every 2h", func(args ...string) {})
}

func TestRegister_LockedPanics(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	Jobs() // locks
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	defer func() {
		if recover() == nil {
			t.Error("Register after lock should panic")
		}
	}()
	Register("late", "@every 1h", func(args ...string) {})
}
