package domain

import (
	"encoding/json"
	"fmt"
)

// Document is the whole per-user profile aggregate.
//
// It is the client shape: every ordered collection is a slice and the
// position of an entity in its slice is its render order. The wire shape
// used at rest lives in the normalize package.
type Document struct {
	Profile       Profile       `json:"profile"`
	LinkGroups    []LinkGroup   `json:"linkGroups"`
	Socials       []SocialLink  `json:"socials"`
	Palettes      []Palette     `json:"palettes"`
	Customization Customization `json:"customization"`

	Extra Extra `json:"-"`
}

// Profile is the header of the public page.
type Profile struct {
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`

	Extra Extra `json:"-"`
}

// LinkGroup is a titled, ordered list of links.
type LinkGroup struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Links []Link `json:"links"`

	Extra Extra `json:"-"`
}

// LinkStyle is the visual style of a link button.
type LinkStyle string

const (
	LinkStyleFill    LinkStyle = "fill"
	LinkStyleOutline LinkStyle = "outline"
)

// Link is a single button on the page.
//
// The countdown fields are only meaningful while IsCountdownEnabled is set.
// They are kept as inert data otherwise; use ActiveCountdown to read them.
type Link struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Style LinkStyle `json:"style,omitempty"`

	IsCountdownEnabled bool   `json:"isCountdownEnabled,omitempty"`
	CountdownTitle     string `json:"countdownTitle,omitempty"`
	CountdownEndDate   string `json:"countdownEndDate,omitempty"` // ISO-8601 instant

	Extra Extra `json:"-"`
}

// SocialLink is an icon link in the socials row. Platform is free text.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`

	Extra Extra `json:"-"`
}

// Palette is a named pair of light/dark color sets.
type Palette struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Light ColorSet `json:"light"`
	Dark  ColorSet `json:"dark"`

	Extra Extra `json:"-"`
}

// ThemeMode selects which color set of a palette is in effect.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Customization holds the appearance settings of the page.
type Customization struct {
	Theme              ThemeMode    `json:"theme"`
	PaletteID          string       `json:"paletteId"`
	CustomPaletteName  string       `json:"customPaletteName"`
	FontID             string       `json:"fontId"`
	BackgroundImageURL string       `json:"backgroundImageUrl,omitempty"`
	LinkAnimation      string       `json:"linkAnimation,omitempty"`
	CustomColors       CustomColors `json:"customColors"`

	Extra Extra `json:"-"`
}

// CustomColors are per-theme-mode CSS variable overrides. Either map may be
// partial or empty but is never encoded as null.
type CustomColors struct {
	Light ColorSet `json:"light"`
	Dark  ColorSet `json:"dark"`
}

// ─────────────────────────────────────────────────────────────────
// JSON encoding (unknown attributes are carried through in Extra)
// ─────────────────────────────────────────────────────────────────

type (
	documentAlias      Document
	profileAlias       Profile
	linkGroupAlias     LinkGroup
	linkAlias          Link
	socialLinkAlias    SocialLink
	paletteAlias       Palette
	customizationAlias Customization
)

func (d Document) MarshalJSON() ([]byte, error) {
	if d.LinkGroups == nil {
		d.LinkGroups = []LinkGroup{}
	}
	if d.Socials == nil {
		d.Socials = []SocialLink{}
	}
	if d.Palettes == nil {
		d.Palettes = []Palette{}
	}
	return encodeExtra(documentAlias(d), d.Extra)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var a documentAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "profile", "linkGroups", "socials", "palettes", "customization")
	if err != nil {
		return err
	}
	a.Extra = extra
	*d = Document(a)
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return encodeExtra(profileAlias(p), p.Extra)
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var a profileAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "name", "handle", "avatarUrl", "bio")
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = Profile(a)
	return nil
}

func (g LinkGroup) MarshalJSON() ([]byte, error) {
	if g.Links == nil {
		g.Links = []Link{}
	}
	return encodeExtra(linkGroupAlias(g), g.Extra)
}

func (g *LinkGroup) UnmarshalJSON(data []byte) error {
	var a linkGroupAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "title", "links")
	if err != nil {
		return err
	}
	a.Extra = extra
	*g = LinkGroup(a)
	return nil
}

func (l Link) MarshalJSON() ([]byte, error) {
	return encodeExtra(linkAlias(l), l.Extra)
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var a linkAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "title", "url", "style",
		"isCountdownEnabled", "countdownTitle", "countdownEndDate")
	if err != nil {
		return err
	}
	a.Extra = extra
	*l = Link(a)
	return nil
}

func (s SocialLink) MarshalJSON() ([]byte, error) {
	return encodeExtra(socialLinkAlias(s), s.Extra)
}

func (s *SocialLink) UnmarshalJSON(data []byte) error {
	var a socialLinkAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "platform", "url")
	if err != nil {
		return err
	}
	a.Extra = extra
	*s = SocialLink(a)
	return nil
}

func (p Palette) MarshalJSON() ([]byte, error) {
	if p.Light == nil {
		p.Light = ColorSet{}
	}
	if p.Dark == nil {
		p.Dark = ColorSet{}
	}
	return encodeExtra(paletteAlias(p), p.Extra)
}

func (p *Palette) UnmarshalJSON(data []byte) error {
	var a paletteAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "name", "light", "dark")
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = Palette(a)
	return nil
}

func (c Customization) MarshalJSON() ([]byte, error) {
	return encodeExtra(customizationAlias(c), c.Extra)
}

func (c *Customization) UnmarshalJSON(data []byte) error {
	var a customizationAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "theme", "paletteId", "customPaletteName", "fontId",
		"backgroundImageUrl", "linkAnimation", "customColors")
	if err != nil {
		return err
	}
	a.Extra = extra
	*c = Customization(a)
	return nil
}

func (c CustomColors) MarshalJSON() ([]byte, error) {
	type plain CustomColors
	out := plain(c.Ensure())
	return json.Marshal(out)
}

// Ensure returns c with both override maps allocated.
func (c CustomColors) Ensure() CustomColors {
	if c.Light == nil {
		c.Light = ColorSet{}
	}
	if c.Dark == nil {
		c.Dark = ColorSet{}
	}
	return c
}

// ForMode returns the override map of the given theme mode.
func (c CustomColors) ForMode(mode ThemeMode) ColorSet {
	if mode == ThemeDark {
		return c.Dark
	}
	return c.Light
}

// ExportFileName is the suggested file name of a user's backup.
func ExportFileName(username string) string {
	return fmt.Sprintf("bio_backup_%s.json", username)
}
