package render

import "testing"

func TestDefaultStyleValidates(t *testing.T) {
	if err := DefaultStyle().Validate(); err != nil {
		t.Fatalf("default style should validate: %v", err)
	}
}

func TestLoadStyleFromBytesPartialOverride(t *testing.T) {
	style, err := LoadStyleFromBytes([]byte("gapX: 120\n"))
	if err != nil {
		t.Fatal(err)
	}
	if style.GapX != 120 {
		t.Errorf("got gapX=%v, want 120", style.GapX)
	}
	if style.GapY != DefaultStyle().GapY {
		t.Error("unset fields should keep default values")
	}
}

func TestValidateRejectsNonPositive(t *testing.T) {
	style := DefaultStyle()
	style.Margin = 0
	if err := style.Validate(); err == nil {
		t.Fatal("expected validation error for zero margin")
	}
}

func TestToYAMLRoundTrip(t *testing.T) {
	style := DefaultStyle()
	data, err := style.ToYAML()
	if err != nil {
		t.Fatal(err)
	}
	got, err := LoadStyleFromBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if got != style {
		t.Errorf("round-tripped style differs: %+v vs %+v", got, style)
	}
}
