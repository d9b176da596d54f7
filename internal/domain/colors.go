package domain

// ColorSet maps CSS variable names to color values.
//
// A palette's color set is expected to carry every key in ColorKeys; the
// custom overrides of a Customization may be partial.
type ColorSet map[string]string

// ColorKeys lists the CSS variables every complete ColorSet defines.
var ColorKeys = []string{
	"--background-color",
	"--surface-color",
	"--surface-color-hover",
	"--text-primary",
	"--text-secondary",
	"--accent-color",
	"--accent-color-hover",
	"--border-color",
	"--avatar-border-color",
	"--input-background-color",
	"--response-background-color",
	"--disabled-background-color",
}

// Clone returns an independent copy. A nil set stays nil.
func (c ColorSet) Clone() ColorSet {
	if c == nil {
		return nil
	}
	out := make(ColorSet, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a new set holding c overlaid with the non-empty values of
// overrides.
func (c ColorSet) Merge(overrides ColorSet) ColorSet {
	out := make(ColorSet, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Missing returns the keys of ColorKeys that c does not define.
func (c ColorSet) Missing() []string {
	var missing []string
	for _, k := range ColorKeys {
		if c[k] == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// ForMode returns the color set of the palette for the given mode.
func (p Palette) ForMode(mode ThemeMode) ColorSet {
	if mode == ThemeDark {
		return p.Dark
	}
	return p.Light
}
