package engine

import (
	"fmt"
	"slices"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
)

// GroupSuggestion is one group proposed by the AI organizer.
type GroupSuggestion struct {
	GroupTitle string   `json:"groupTitle"`
	LinkIDs    []string `json:"linkIds"`
}

// UpdateProfile merges p into the profile.
func (e *Engine) UpdateProfile(p domain.ProfilePatch) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		p.Apply(&doc.Profile)
		return "", nil
	})
}

// UpdateCustomization merges p into the customization. Switching only the
// theme mode is not announced.
func (e *Engine) UpdateCustomization(p domain.CustomizationPatch) error {
	if p.Theme != nil && *p.Theme != domain.ThemeLight && *p.Theme != domain.ThemeDark {
		return fmt.Errorf("theme %q: %w", *p.Theme, ErrInvalidArgument)
	}
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		p.Apply(&doc.Customization)
		if p.ThemeOnly() {
			return "", nil
		}
		return msgAppearance, nil
	})
}

// ApplyGeneratedTheme installs generated colors as the custom palette and
// selects it.
func (e *Engine) ApplyGeneratedTheme(name string, colors domain.CustomColors) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		c := &doc.Customization
		c.CustomColors = colors.Clone().Ensure()
		c.CustomPaletteName = name
		c.PaletteID = domain.CustomPaletteID
		return fmt.Sprintf(msgThemeApplied, name), nil
	})
}

// UpdatePalette merges p into the palette with the given id. The default
// palette keeps every color key: replaced sets are layered over the
// built-in default colors.
func (e *Engine) UpdatePalette(id string, p domain.PalettePatch) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		i := doc.PaletteIndex(id)
		if i < 0 {
			return "", unknown("palette", id)
		}
		pal := &doc.Palettes[i]
		p.Apply(pal)
		if id == domain.DefaultPaletteID {
			base := catalog.DefaultPalette()
			pal.Light = base.Light.Merge(pal.Light)
			pal.Dark = base.Dark.Merge(pal.Dark)
		}
		return "", nil
	})
}

// OverwritePalette asks to replace a palette with the current custom
// colors, layered over the default palette, and to rename it after the
// custom palette. Nothing happens on confirmation unless the custom
// palette is selected at that time.
func (e *Engine) OverwritePalette(id string) (*Confirmation, error) {
	name, err := e.lookup("palette", id, func(doc *domain.Document) (string, bool) {
		i := doc.PaletteIndex(id)
		if i < 0 {
			return "", false
		}
		return doc.Palettes[i].Name, true
	})
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = id
	}

	return e.request(
		fmt.Sprintf("Overwrite '%s'?", name),
		"Are you sure you want to overwrite this palette with your current custom colors?",
		func() error {
			return e.mutate(true, func(doc *domain.Document) (string, error) {
				i := doc.PaletteIndex(id)
				if i < 0 {
					return "", unknown("palette", id)
				}
				c := doc.Customization
				if c.PaletteID != domain.CustomPaletteID {
					return "", errNoop
				}
				base := catalog.DefaultPalette()
				p := &doc.Palettes[i]
				if c.CustomPaletteName != "" {
					p.Name = c.CustomPaletteName
				}
				p.Light = base.Light.Merge(c.CustomColors.Light)
				p.Dark = base.Dark.Merge(c.CustomColors.Dark)
				return fmt.Sprintf(msgPaletteUpdated, p.Name), nil
			})
		},
	)
}

// AddLink appends a new link to a group and returns its id.
func (e *Engine) AddLink(groupID string, draft domain.LinkDraft) (string, error) {
	var id string
	err := e.mutate(true, func(doc *domain.Document) (string, error) {
		gi := doc.GroupIndex(groupID)
		if gi < 0 {
			return "", unknown("group", groupID)
		}
		id = e.newID()
		g := &doc.LinkGroups[gi]
		g.Links = append(g.Links, draft.WithID(id))
		return msgLinkAdded, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateLink merges p into the link with the given id. Link edits are not
// undoable.
func (e *Engine) UpdateLink(id string, p domain.LinkPatch) error {
	return e.mutate(false, func(doc *domain.Document) (string, error) {
		gi, li := doc.LinkIndex(id)
		if gi < 0 {
			return "", unknown("link", id)
		}
		p.Apply(&doc.LinkGroups[gi].Links[li])
		return "", nil
	})
}

// DeleteLink asks to remove a link.
func (e *Engine) DeleteLink(id string) (*Confirmation, error) {
	if _, err := e.lookup("link", id, func(doc *domain.Document) (string, bool) {
		gi, _ := doc.LinkIndex(id)
		return "", gi >= 0
	}); err != nil {
		return nil, err
	}

	return e.request("Delete Link", "Are you sure you want to delete this link?", func() error {
		return e.mutate(true, func(doc *domain.Document) (string, error) {
			gi, li := doc.LinkIndex(id)
			if gi < 0 {
				return "", unknown("link", id)
			}
			g := &doc.LinkGroups[gi]
			g.Links = slices.Delete(g.Links, li, li+1)
			return msgLinkDeleted, nil
		})
	})
}

// ReorderLink swaps a link with its neighbor inside its group. Moving past
// either end does nothing.
func (e *Engine) ReorderLink(id string, dir domain.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("direction %q: %w", dir, ErrInvalidArgument)
	}
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		gi, li := doc.LinkIndex(id)
		if gi < 0 {
			return "", unknown("link", id)
		}
		if !swap(doc.LinkGroups[gi].Links, li, dir) {
			return "", errNoop
		}
		return "", nil
	})
}

// MoveLinkToGroup removes a link from its group and appends it to the
// target group.
func (e *Engine) MoveLinkToGroup(linkID, groupID string) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		gi, li := doc.LinkIndex(linkID)
		if gi < 0 {
			return "", unknown("link", linkID)
		}
		ti := doc.GroupIndex(groupID)
		if ti < 0 {
			return "", unknown("group", groupID)
		}
		src := &doc.LinkGroups[gi]
		link := src.Links[li]
		src.Links = slices.Delete(src.Links, li, li+1)
		dst := &doc.LinkGroups[ti]
		dst.Links = append(dst.Links, link)
		return "", nil
	})
}

// AddGroup appends an empty group and returns its id.
func (e *Engine) AddGroup(title string) (string, error) {
	var id string
	err := e.mutate(true, func(doc *domain.Document) (string, error) {
		id = e.newID()
		doc.LinkGroups = append(doc.LinkGroups, domain.LinkGroup{ID: id, Title: title, Links: []domain.Link{}})
		return msgGroupAdded, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateGroup merges p into a group. Group edits are not undoable.
func (e *Engine) UpdateGroup(id string, p domain.GroupPatch) error {
	return e.mutate(false, func(doc *domain.Document) (string, error) {
		gi := doc.GroupIndex(id)
		if gi < 0 {
			return "", unknown("group", id)
		}
		p.Apply(&doc.LinkGroups[gi])
		return "", nil
	})
}

// DeleteGroup asks to remove a group together with its links.
func (e *Engine) DeleteGroup(id string) (*Confirmation, error) {
	if _, err := e.lookup("group", id, func(doc *domain.Document) (string, bool) {
		return "", doc.GroupIndex(id) >= 0
	}); err != nil {
		return nil, err
	}

	return e.request("Delete Group", "Are you sure you want to delete this group and all its links?", func() error {
		return e.mutate(true, func(doc *domain.Document) (string, error) {
			gi := doc.GroupIndex(id)
			if gi < 0 {
				return "", unknown("group", id)
			}
			doc.LinkGroups = slices.Delete(doc.LinkGroups, gi, gi+1)
			return msgGroupDeleted, nil
		})
	})
}

// ReorderGroup swaps a group with its neighbor.
func (e *Engine) ReorderGroup(id string, dir domain.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("direction %q: %w", dir, ErrInvalidArgument)
	}
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		gi := doc.GroupIndex(id)
		if gi < 0 {
			return "", unknown("group", id)
		}
		if !swap(doc.LinkGroups, gi, dir) {
			return "", errNoop
		}
		return "", nil
	})
}

// ApplyGroupSuggestions rebuilds every group from the suggestions. Unknown
// link ids are dropped and a link claimed twice stays in the first group
// claiming it. Links no suggestion mentions end up in a trailing
// Miscellaneous group.
func (e *Engine) ApplyGroupSuggestions(suggestions []GroupSuggestion) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		all := doc.AllLinks()
		byID := make(map[string]domain.Link, len(all))
		for _, l := range all {
			byID[l.ID] = l
		}

		placed := make(map[string]bool, len(all))
		groups := make([]domain.LinkGroup, 0, len(suggestions)+1)
		for _, s := range suggestions {
			g := domain.LinkGroup{ID: e.newID(), Title: s.GroupTitle, Links: []domain.Link{}}
			for _, id := range s.LinkIDs {
				l, ok := byID[id]
				if !ok || placed[id] {
					continue
				}
				placed[id] = true
				g.Links = append(g.Links, l)
			}
			groups = append(groups, g)
		}

		var rest []domain.Link
		for _, l := range all {
			if !placed[l.ID] {
				rest = append(rest, l)
			}
		}
		if len(rest) > 0 {
			groups = append(groups, domain.LinkGroup{ID: e.newID(), Title: domain.MiscGroupTitle, Links: rest})
		}

		doc.LinkGroups = groups
		return msgGroupsApplied, nil
	})
}

// AddSocial appends an empty social link and returns its id.
func (e *Engine) AddSocial() (string, error) {
	var id string
	err := e.mutate(true, func(doc *domain.Document) (string, error) {
		id = e.newID()
		doc.Socials = append(doc.Socials, domain.SocialLink{ID: id, Platform: "Website"})
		return "", nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSocial sets one field of a social link. Social edits are not
// undoable.
func (e *Engine) UpdateSocial(id string, field domain.SocialField, value string) error {
	if !field.Valid() {
		return fmt.Errorf("social field %q: %w", field, ErrInvalidArgument)
	}
	return e.mutate(false, func(doc *domain.Document) (string, error) {
		i := doc.SocialIndex(id)
		if i < 0 {
			return "", unknown("social", id)
		}
		field.Set(&doc.Socials[i], value)
		return "", nil
	})
}

// DeleteSocial removes a social link right away.
func (e *Engine) DeleteSocial(id string) error {
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		i := doc.SocialIndex(id)
		if i < 0 {
			return "", unknown("social", id)
		}
		doc.Socials = slices.Delete(doc.Socials, i, i+1)
		return msgSocialDeleted, nil
	})
}

// ReorderSocial swaps a social link with its neighbor.
func (e *Engine) ReorderSocial(id string, dir domain.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("direction %q: %w", dir, ErrInvalidArgument)
	}
	return e.mutate(true, func(doc *domain.Document) (string, error) {
		i := doc.SocialIndex(id)
		if i < 0 {
			return "", unknown("social", id)
		}
		if !swap(doc.Socials, i, dir) {
			return "", errNoop
		}
		return "", nil
	})
}

// lookup checks an entity exists in the current document.
func (e *Engine) lookup(kind, id string, find func(doc *domain.Document) (string, bool)) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return "", ErrNotLoaded
	}
	v, ok := find(e.doc)
	if !ok {
		return "", unknown(kind, id)
	}
	return v, nil
}

func swap[T any](s []T, i int, dir domain.Direction) bool {
	j := i + dir.Offset()
	if j < 0 || j >= len(s) {
		return false
	}
	s[i], s[j] = s[j], s[i]
	return true
}
