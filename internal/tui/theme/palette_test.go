package theme

import "testing"

func TestNewPaletteDerivesBarBackgrounds(t *testing.T) {
	th, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := NewPalette(th)
	if p.BarBg == p.Bar {
		t.Error("BarBg should be a darkened variant, not the raw bar color")
	}
	if string(p.BarProgress) != th.Bar {
		t.Errorf("BarProgress = %s, want %s", p.BarProgress, th.Bar)
	}
}

func TestNewPaletteNilThemeFallsBack(t *testing.T) {
	p := NewPalette(nil)
	if p.Bg == "" {
		t.Error("nil theme produced an empty palette")
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ffffff", "#7f7f7f"},
		{"#000000", "#282828"}, // floor keeps bars visible
		{"not-a-color", "not-a-color"},
	}
	for _, tt := range tests {
		if got := darkenColor(tt.in); got != tt.want {
			t.Errorf("darkenColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	// Against a bright yellow background the dark text wins.
	if got := chooseTextColor("#f9e2af", "#cdd6f4", "#1e1e2e"); got != "#1e1e2e" {
		t.Errorf("chooseTextColor on light bg = %q, want dark text", got)
	}
	// Against a dark blue background the light text wins.
	if got := chooseTextColor("#1e3a5f", "#cdd6f4", "#1e1e2e"); got != "#cdd6f4" {
		t.Errorf("chooseTextColor on dark bg = %q, want light text", got)
	}
}
