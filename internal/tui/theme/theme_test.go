package theme

import "testing"

func TestLoadAllAvailable(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}
			for field, value := range map[string]string{
				"bg":      th.Bg,
				"fg":      th.Fg,
				"accent":  th.Accent,
				"bar":     th.Bar,
				"subtask": th.Subtask,
				"late":    th.Late,
			} {
				if value == "" {
					t.Errorf("theme %q missing %s", name, field)
				}
			}
		})
	}
}

func TestLoadFallsBackToMocha(t *testing.T) {
	th, err := Load("no-such-theme")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("fallback theme = %q, want mocha", th.Name)
	}
}

func TestLoadEmptyDefaultsToMocha(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("default theme = %q, want mocha", th.Name)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Latte") {
		t.Error("IsAvailable should be case-insensitive")
	}
	if IsAvailable("solarized") {
		t.Error("IsAvailable(solarized) = true")
	}
}
