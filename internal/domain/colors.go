package domain

// ColorID identifies a path color. The zero value means an empty cell.
// IDs are totally ordered so iteration over a level is deterministic.
type ColorID uint8

// None marks an empty cell.
const None ColorID = 0

// The fixed palette. Names follow the classic set of nine.
const (
	Indigo ColorID = iota + 1
	Coral
	Emerald
	Purple
	Blue
	Orange
	Red
	Turquoise
	Gray
)

// PaletteSize is the maximum number of color pairs a level can hold.
const PaletteSize = 9

var colorNames = [PaletteSize + 1]string{
	"",
	"indigo",
	"coral",
	"emerald",
	"purple",
	"blue",
	"orange",
	"red",
	"turquoise",
	"gray",
}

// Name returns a human-readable label for the color, or "" for None
// and out-of-palette values.
func (c ColorID) Name() string {
	if c == None || int(c) > PaletteSize {
		return ""
	}
	return colorNames[c]
}

// Palette returns the full ordered palette.
func Palette() []ColorID {
	out := make([]ColorID, PaletteSize)
	for i := range out {
		out[i] = ColorID(i + 1)
	}
	return out
}
