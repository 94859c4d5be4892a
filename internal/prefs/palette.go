package prefs

// Palette is the fixed ordered set of selectable account colors. Entries
// are mgutz/ansi style codes rendered by the ui package.
var Palette = []string{
	"red",
	"green",
	"yellow",
	"blue",
	"magenta",
	"cyan",
	"red+h",
	"green+h",
	"blue+h",
	"magenta+h",
}

// PaletteSize returns the number of selectable colors.
func PaletteSize() int {
	return len(Palette)
}

// DefaultColorIndex derives a stable palette index from an account identity
// key: the sum of the key's code points modulo the palette size. Pure and
// side-effect free, so a first sighting of an account gets a reproducible
// color without a write.
func DefaultColorIndex(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum % len(Palette)
}
