package domain

// Partial update records. A nil pointer (or nil map) leaves the matching
// field untouched; identifiers and child collections are never patchable.

// ProfilePatch updates fields of the profile.
type ProfilePatch struct {
	Name      *string
	Handle    *string
	AvatarURL *string
	Bio       *string
}

// Apply merges the set fields of the patch into p.
func (pp ProfilePatch) Apply(p *Profile) {
	setString(&p.Name, pp.Name)
	setString(&p.Handle, pp.Handle)
	setString(&p.AvatarURL, pp.AvatarURL)
	setString(&p.Bio, pp.Bio)
}

// CustomizationPatch updates fields of the customization.
type CustomizationPatch struct {
	Theme              *ThemeMode
	PaletteID          *string
	CustomPaletteName  *string
	FontID             *string
	BackgroundImageURL *string
	LinkAnimation      *string
	CustomColors       *CustomColors
}

// Apply merges the set fields of the patch into c.
func (cp CustomizationPatch) Apply(c *Customization) {
	if cp.Theme != nil {
		c.Theme = *cp.Theme
	}
	setString(&c.PaletteID, cp.PaletteID)
	setString(&c.CustomPaletteName, cp.CustomPaletteName)
	setString(&c.FontID, cp.FontID)
	setString(&c.BackgroundImageURL, cp.BackgroundImageURL)
	setString(&c.LinkAnimation, cp.LinkAnimation)
	if cp.CustomColors != nil {
		c.CustomColors = cp.CustomColors.Clone().Ensure()
	}
}

// ThemeOnly reports whether the patch changes the theme mode and nothing else.
func (cp CustomizationPatch) ThemeOnly() bool {
	return cp.Theme != nil &&
		cp.PaletteID == nil && cp.CustomPaletteName == nil && cp.FontID == nil &&
		cp.BackgroundImageURL == nil && cp.LinkAnimation == nil && cp.CustomColors == nil
}

// PalettePatch updates a palette. Color sets are replaced wholesale.
type PalettePatch struct {
	Name  *string
	Light ColorSet
	Dark  ColorSet
}

// Apply merges the set fields of the patch into p.
func (pp PalettePatch) Apply(p *Palette) {
	setString(&p.Name, pp.Name)
	if pp.Light != nil {
		p.Light = pp.Light.Clone()
	}
	if pp.Dark != nil {
		p.Dark = pp.Dark.Clone()
	}
}

// LinkPatch updates fields of a link.
type LinkPatch struct {
	Title              *string
	URL                *string
	Style              *LinkStyle
	IsCountdownEnabled *bool
	CountdownTitle     *string
	CountdownEndDate   *string
}

// Apply merges the set fields of the patch into l.
func (lp LinkPatch) Apply(l *Link) {
	setString(&l.Title, lp.Title)
	setString(&l.URL, lp.URL)
	if lp.Style != nil {
		l.Style = *lp.Style
	}
	if lp.IsCountdownEnabled != nil {
		l.IsCountdownEnabled = *lp.IsCountdownEnabled
	}
	setString(&l.CountdownTitle, lp.CountdownTitle)
	setString(&l.CountdownEndDate, lp.CountdownEndDate)
}

// LinkDraft is a link before the engine assigns it an id.
type LinkDraft struct {
	Title              string
	URL                string
	Style              LinkStyle
	IsCountdownEnabled bool
	CountdownTitle     string
	CountdownEndDate   string
}

// WithID materializes the draft as a link.
func (ld LinkDraft) WithID(id string) Link {
	style := ld.Style
	if style == "" {
		style = LinkStyleFill
	}
	return Link{
		ID:                 id,
		Title:              ld.Title,
		URL:                ld.URL,
		Style:              style,
		IsCountdownEnabled: ld.IsCountdownEnabled,
		CountdownTitle:     ld.CountdownTitle,
		CountdownEndDate:   ld.CountdownEndDate,
	}
}

// GroupPatch updates a link group. Its links are not patchable.
type GroupPatch struct {
	Title *string
}

// Apply merges the set fields of the patch into g.
func (gp GroupPatch) Apply(g *LinkGroup) {
	setString(&g.Title, gp.Title)
}

// SocialField names the single patchable field of a social link.
type SocialField string

const (
	SocialPlatform SocialField = "platform"
	SocialURL      SocialField = "url"
)

// Valid reports whether f names a patchable field.
func (f SocialField) Valid() bool {
	return f == SocialPlatform || f == SocialURL
}

// Set assigns value to the named field of s. Unknown fields are ignored.
func (f SocialField) Set(s *SocialLink, value string) {
	switch f {
	case SocialPlatform:
		s.Platform = value
	case SocialURL:
		s.URL = value
	}
}

// Direction moves an entity one slot within its ordered collection.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Up || d == Down
}

// Offset returns the index delta for the direction.
func (d Direction) Offset() int {
	if d == Up {
		return -1
	}
	return 1
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
