package domain

import "time"

const (
	// DefaultPaletteID is reserved: the palette with this id always exists
	// and supplies any color key missing elsewhere.
	DefaultPaletteID = "default"

	// CustomPaletteID is the sentinel palette id selecting the custom
	// color overrides of the customization.
	CustomPaletteID = "custom"

	// MiscGroupTitle names the group collecting links left out of a
	// regrouping.
	MiscGroupTitle = "Miscellaneous"
)

// GroupIndex returns the position of the group with the given id, or -1.
func (d *Document) GroupIndex(id string) int {
	for i := range d.LinkGroups {
		if d.LinkGroups[i].ID == id {
			return i
		}
	}
	return -1
}

// LinkIndex scans all groups for the link with the given id and returns
// its group position and position within that group, or (-1, -1).
func (d *Document) LinkIndex(id string) (group, link int) {
	for gi := range d.LinkGroups {
		for li := range d.LinkGroups[gi].Links {
			if d.LinkGroups[gi].Links[li].ID == id {
				return gi, li
			}
		}
	}
	return -1, -1
}

// SocialIndex returns the position of the social link with the given id, or -1.
func (d *Document) SocialIndex(id string) int {
	for i := range d.Socials {
		if d.Socials[i].ID == id {
			return i
		}
	}
	return -1
}

// PaletteIndex returns the position of the palette with the given id, or -1.
func (d *Document) PaletteIndex(id string) int {
	for i := range d.Palettes {
		if d.Palettes[i].ID == id {
			return i
		}
	}
	return -1
}

// AllLinks returns every link of the document in render order.
func (d *Document) AllLinks() []Link {
	var links []Link
	for _, g := range d.LinkGroups {
		links = append(links, g.Links...)
	}
	return links
}

// ActiveColors resolves the color set in effect for the current theme mode.
// The selected palette (or the custom overrides when the custom sentinel is
// selected) is layered over the default palette, so every key the default
// defines has a value.
func (d *Document) ActiveColors() ColorSet {
	mode := d.Customization.Theme
	var base ColorSet
	if i := d.PaletteIndex(DefaultPaletteID); i >= 0 {
		base = d.Palettes[i].ForMode(mode)
	}

	switch id := d.Customization.PaletteID; id {
	case CustomPaletteID:
		return base.Merge(d.Customization.CustomColors.ForMode(mode))
	case DefaultPaletteID, "":
		return base.Merge(nil)
	default:
		if i := d.PaletteIndex(id); i >= 0 {
			return base.Merge(d.Palettes[i].ForMode(mode))
		}
		return base.Merge(nil)
	}
}

// EffectiveStyle returns the link style, defaulting to fill.
func (l Link) EffectiveStyle() LinkStyle {
	if l.Style == "" {
		return LinkStyleFill
	}
	return l.Style
}

// Countdown is the visible countdown state of a link.
type Countdown struct {
	Title  string
	EndsAt time.Time
}

// ActiveCountdown reports the countdown to show for the link at now. It is
// only present while the countdown is enabled, its end date parses and the
// end date lies in the future; stale countdown fields are never surfaced.
func (l Link) ActiveCountdown(now time.Time) (Countdown, bool) {
	if !l.IsCountdownEnabled || l.CountdownEndDate == "" {
		return Countdown{}, false
	}
	end, err := time.Parse(time.RFC3339, l.CountdownEndDate)
	if err != nil || !end.After(now) {
		return Countdown{}, false
	}
	return Countdown{Title: l.CountdownTitle, EndsAt: end}, true
}
