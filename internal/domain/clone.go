package domain

// Clone returns a deep copy of the document. Mutating the copy never
// affects the receiver.
func (d Document) Clone() Document {
	out := Document{
		Profile:       d.Profile.Clone(),
		Customization: d.Customization.Clone(),
		Extra:         d.Extra.Clone(),
	}
	if d.LinkGroups != nil {
		out.LinkGroups = make([]LinkGroup, len(d.LinkGroups))
		for i, g := range d.LinkGroups {
			out.LinkGroups[i] = g.Clone()
		}
	}
	if d.Socials != nil {
		out.Socials = make([]SocialLink, len(d.Socials))
		for i, s := range d.Socials {
			out.Socials[i] = s.Clone()
		}
	}
	if d.Palettes != nil {
		out.Palettes = make([]Palette, len(d.Palettes))
		for i, p := range d.Palettes {
			out.Palettes[i] = p.Clone()
		}
	}
	return out
}

func (p Profile) Clone() Profile {
	p.Extra = p.Extra.Clone()
	return p
}

func (g LinkGroup) Clone() LinkGroup {
	out := g
	out.Extra = g.Extra.Clone()
	if g.Links != nil {
		out.Links = make([]Link, len(g.Links))
		for i, l := range g.Links {
			out.Links[i] = l.Clone()
		}
	}
	return out
}

func (l Link) Clone() Link {
	l.Extra = l.Extra.Clone()
	return l
}

func (s SocialLink) Clone() SocialLink {
	s.Extra = s.Extra.Clone()
	return s
}

func (p Palette) Clone() Palette {
	p.Light = p.Light.Clone()
	p.Dark = p.Dark.Clone()
	p.Extra = p.Extra.Clone()
	return p
}

func (c Customization) Clone() Customization {
	c.CustomColors = c.CustomColors.Clone()
	c.Extra = c.Extra.Clone()
	return c
}

func (c CustomColors) Clone() CustomColors {
	return CustomColors{Light: c.Light.Clone(), Dark: c.Dark.Clone()}
}
