package scenecraft

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectMotifsNight(t *testing.T) {
	prompts := []string{
		"night",
		"A quiet NIGHT over the bay",
		"desert at midnight with a city skyline",
		"Nightfall",
	}
	for _, p := range prompts {
		t.Run(p, func(t *testing.T) {
			m := DetectMotifs(p, "", "", "")
			if !m.Has(SkyNight) || !m.Has(Moon) || !m.Has(Dark) {
				t.Errorf("night flags not all set: %v", m.Active())
			}
		})
	}
}

func TestDetectMotifsIsPure(t *testing.T) {
	a := DetectMotifs("Foggy mountain lake", "Watercolor", "calm", "dawn")
	b := DetectMotifs("Foggy mountain lake", "Watercolor", "calm", "dawn")
	if a != b {
		t.Errorf("same input gave different flags: %v vs %v", a.Active(), b.Active())
	}
}

func TestDetectMotifsSubstring(t *testing.T) {
	// "start" contains "star"; matching is not whole-word.
	if m := DetectMotifs("start here", "", "", ""); !m.Has(SkyNight) {
		t.Error("substring match on star missed")
	}
	// Inputs are joined with spaces, so words never merge across fields.
	if m := DetectMotifs("s", "ea", "", ""); m.Has(Ocean) {
		t.Error(`"s" + "ea" matched "sea"`)
	}
}

func TestDetectMotifsEmpty(t *testing.T) {
	if got := DetectMotifs("", "", "", "").Active(); len(got) != 0 {
		t.Errorf("empty input flags = %v", got)
	}
}

func TestDetectMotifsLionAtSunset(t *testing.T) {
	m := DetectMotifs("a lion at sunset in the savanna", "Photorealistic", "", "")
	for _, want := range []Motif{SkySunset, Sun, SunsetExact, GoldenTint, Reflection} {
		if !m.Has(want) {
			t.Errorf("%s not set", want)
		}
	}
	for _, off := range []Motif{Mountain, City, Ocean, Forest, Snow, Desert, SkyNight, Moon} {
		if m.Has(off) {
			t.Errorf("%s unexpectedly set", off)
		}
	}
}

func TestDetectMotifsFieldsCombine(t *testing.T) {
	m := DetectMotifs("", "cyberpunk", "", "forest")
	if !m.Has(City) || !m.Has(NeonBand) || !m.Has(Forest) {
		t.Errorf("style and scene fields not scanned: %v", m.Active())
	}
}

func TestKeywordTable(t *testing.T) {
	names := map[string]bool{}
	for m := range motifCount {
		name := m.String()
		if names[name] {
			t.Errorf("duplicate motif name %q", name)
		}
		names[name] = true
		kws := m.Keywords()
		if len(kws) == 0 {
			t.Errorf("%s has no keywords", name)
		}
		for _, k := range kws {
			if k != strings.ToLower(k) {
				t.Errorf("%s keyword %q is not lower case", name, k)
			}
		}
	}
	if Motif(-1).String() != "unknown" || motifCount.Keywords() != nil {
		t.Error("out of range motif not handled")
	}
}

func TestMotifsActiveOrder(t *testing.T) {
	m := DetectMotifs("snowy mountain", "", "", "")
	got := m.Active()
	if !slices.IsSorted(got) {
		t.Errorf("Active not in table order: %v", got)
	}
	if !slices.Contains(got, Mountain) || !slices.Contains(got, Snow) {
		t.Errorf("Active = %v", got)
	}
}
