package theme

import "testing"

func TestLookup(t *testing.T) {
	for _, n := range Names() {
		th, err := Lookup(string(n))
		if err != nil {
			t.Fatalf("Lookup(%q): %v", n, err)
		}
		if th.Name != n {
			t.Errorf("Lookup(%q).Name = %q", n, th.Name)
		}
		if th.Idle == nil || th.User == nil || th.System == nil || th.Unlit == nil || th.Frame == nil {
			t.Errorf("theme %q has unset colours", n)
		}
	}
	if _, err := Lookup("neon"); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	if got := Get("neon").Name; got != Default {
		t.Errorf("Get(neon) = %q, want %q", got, Default)
	}
}

func TestNextCyclesThroughAll(t *testing.T) {
	seen := map[Name]bool{}
	th := Get(System)
	for range Names() {
		seen[th.Name] = true
		th = th.Next()
	}
	if th.Name != System {
		t.Errorf("cycle ended on %q, want %q", th.Name, System)
	}
	if len(seen) != len(Names()) {
		t.Errorf("visited %d themes, want %d", len(seen), len(Names()))
	}
}
