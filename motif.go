package scenecraft

import (
	"strings"
)

// Motif is one visual theme detected in the scene description.
type Motif int

const (
	SkySunset Motif = iota
	SkySunrise
	SkyNight
	SkyDay
	SkyStorm
	SkyAutumn
	SkyWinter
	Nebula
	Sun
	SunsetExact
	SunriseExact
	Moon
	Cloud
	StormTint
	GoldenTint
	Mountain
	City
	NeonBand
	Ocean
	Shoreline
	Tropical
	Dark
	Reflection
	Forest
	Jungle
	Desert
	Snow
	OpenWater
	Beach
	Urban
	Sandy
	Grass
	GrassBlocker
	SnowGround

	motifCount
)

// keywordTable is the whole detector: a motif is present when any of its
// keywords occurs as a substring of the lower-cased text. Substring, not
// whole word: "star" also fires on "start".
var keywordTable = [motifCount]struct {
	name     string
	keywords []string
}{
	SkySunset:    {"sky-sunset", []string{"sunset", "dusk", "golden hour"}},
	SkySunrise:   {"sky-sunrise", []string{"sunrise", "dawn"}},
	SkyNight:     {"sky-night", []string{"night", "dark", "midnight", "star", "galaxy", "space", "cosmos", "nebula"}},
	SkyDay:       {"sky-day", []string{"day", "clear", "sunny", "bright", "afternoon", "summer", "noon"}},
	SkyStorm:     {"sky-storm", []string{"storm", "thunder", "rain", "overcast"}},
	SkyAutumn:    {"autumn", []string{"autumn", "fall"}},
	SkyWinter:    {"sky-winter", []string{"snow", "winter", "arctic", "frozen"}},
	Nebula:       {"nebula", []string{"space", "nebula", "galaxy", "cosmos", "universe"}},
	Sun:          {"sun", []string{"sun", "sunset", "sunrise", "day", "golden", "bright", "morning", "noon"}},
	SunsetExact:  {"sunset", []string{"sunset"}},
	SunriseExact: {"sunrise", []string{"sunrise"}},
	Moon:         {"moon", []string{"moon", "night", "lunar", "moonlight"}},
	Cloud:        {"cloud", []string{"cloud", "overcast", "rain", "storm", "day", "sunny", "sky", "fluffy"}},
	StormTint:    {"storm-tint", []string{"storm", "rain", "overcast"}},
	GoldenTint:   {"golden-tint", []string{"sunset", "golden"}},
	Mountain:     {"mountain", []string{"mountain", "hill", "landscape", "valley", "alpine", "peak", "ridge", "highland"}},
	City: {"city", []string{"city", "urban", "building", "skyline", "futuristic", "metropolis",
		"skyscraper", "downtown", "neon", "cyberpunk"}},
	NeonBand:     {"neon-band", []string{"futuristic", "neon", "cyberpunk", "rain"}},
	Ocean:        {"ocean", []string{"ocean", "sea", "water", "lake", "river", "wave", "beach", "coastal", "bay"}},
	Shoreline:    {"shoreline", []string{"beach", "coastal", "bay"}},
	Tropical:     {"tropical", []string{"tropical", "clear", "turquoise"}},
	Dark:         {"dark", []string{"night", "dark"}},
	Reflection:   {"reflection", []string{"sunset", "sunrise", "golden"}},
	Forest:       {"forest", []string{"forest", "tree", "jungle", "wood", "nature", "pine", "oak", "bamboo", "rainforest"}},
	Jungle:       {"jungle", []string{"tropical", "jungle"}},
	Desert:       {"desert", []string{"desert", "sand", "dune", "sahara", "arid"}},
	Snow:         {"snow", []string{"snow", "winter", "blizzard", "frozen", "tundra", "arctic", "ice"}},
	OpenWater:    {"open-water", []string{"ocean", "sea", "water"}},
	Beach:        {"beach", []string{"beach", "coastal"}},
	Urban:        {"urban", []string{"city", "urban", "skyscraper"}},
	Sandy:        {"sandy", []string{"desert", "sand"}},
	Grass:        {"grass", []string{"grass", "meadow", "field", "park", "lawn", "nature"}},
	GrassBlocker: {"grass-blocker", []string{"desert", "snow", "winter"}},
	SnowGround:   {"snow-ground", []string{"snow", "winter", "frozen"}},
}

func (m Motif) String() string {
	if m < 0 || m >= motifCount {
		return "unknown"
	}
	return keywordTable[m].name
}

// Keywords returns a copy of the keywords that trigger m.
func (m Motif) Keywords() []string {
	if m < 0 || m >= motifCount {
		return nil
	}
	return append([]string(nil), keywordTable[m].keywords...)
}

// Motifs is the read-only flag set for one render.
type Motifs [motifCount]bool

// Has reports whether m was detected.
func (f Motifs) Has(m Motif) bool {
	return m >= 0 && m < motifCount && f[m]
}

// Active lists detected motifs in table order.
func (f Motifs) Active() []Motif {
	var out []Motif
	for m := range motifCount {
		if f[m] {
			out = append(out, m)
		}
	}
	return out
}

// DetectMotifs joins the inputs with spaces, lower-cases them and evaluates
// every keyword row. Flags are independent: "night" and "mountain" can both be
// set, and the passes resolve any visual conflict.
func DetectMotifs(prompt, style, mood, scene string) Motifs {
	return detect(motifText(prompt, style, mood, scene))
}

func motifText(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

func detect(text string) Motifs {
	var f Motifs
	for m, row := range keywordTable {
		for _, k := range row.keywords {
			if strings.Contains(text, k) {
				f[m] = true
				break
			}
		}
	}
	return f
}
