package crud

import "testing"

func TestListParams_Encode(t *testing.T) {
	p := ListParams{
		Page:   3,
		Limit:  50,
		Search: "angle grinder",
		Sort:   &Sort{Field: "price", Direction: "desc"},
		Filters: map[string]string{
			"category": "power-tools",
			"brand":    "",
		},
	}
	got := p.Encode()
	want := "category=power-tools&limit=50&page=3&search=angle+grinder&sortBy=price&sortDir=desc"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestListParams_EncodeEmpty(t *testing.T) {
	if got := (ListParams{}).Encode(); got != "" {
		t.Errorf("Encode zero value = %q, want empty", got)
	}
}

func TestListParams_SortDirectionDefaultsToAsc(t *testing.T) {
	p := ListParams{Sort: &Sort{Field: "name", Direction: "sideways"}}
	got := p.Encode()
	want := "sortBy=name&sortDir=asc"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}
