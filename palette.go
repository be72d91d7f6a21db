package scenecraft

import (
	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of colours every scene palette carries.
const PaletteSize = 5

// Palette is five validated hex colours (#RGB or #RRGGBB). Slot roles in the
// compositor: 0 deep background, 1 mid tone, 2 accent, 3 and 4 glow colours.
type Palette [PaletteSize]string

// DefaultPalette fills every slot whose candidate is missing or malformed.
var DefaultPalette = Palette{"#0a0520", "#1a0a50", "#7c5cff", "#00e5c8", "#ff5c8a"}

// ResolvePalette validates up to five candidate colours. A slot keeps its
// candidate byte for byte when it parses as #RGB or #RRGGBB (any case);
// otherwise the default for that slot is used. Extra candidates are ignored.
// It never fails: a bad palette degrades to defaults instead.
func ResolvePalette(candidates []string) Palette {
	out := DefaultPalette
	for i := range min(len(candidates), PaletteSize) {
		if ValidHexColor(candidates[i]) {
			out[i] = candidates[i]
		}
	}
	return out
}

// ValidHexColor reports whether s is "#" followed by 3 or 6 hex digits.
func ValidHexColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// Colors parses every slot. Slots that somehow fail to parse (a Palette built
// by hand rather than by ResolvePalette) fall back to the default colour.
func (p Palette) Colors() [PaletteSize]colorful.Color {
	var out [PaletteSize]colorful.Color
	for i, s := range p {
		c, err := colorful.Hex(s)
		if err != nil {
			c, _ = colorful.Hex(DefaultPalette[i])
		}
		out[i] = c
	}
	return out
}

// Slice returns the palette as a []string, the shape ResolvePalette accepts.
func (p Palette) Slice() []string {
	return p[:]
}
