package catalog

import (
	"fmt"

	"github.com/MrSnakeDoc/bio/internal/domain"
)

// NewUserDocument builds the document a new account starts with: the
// profile derived from the username, one group holding one link, one
// social link and the default palette.
func NewUserDocument(username string, newID func() string) domain.Document {
	return domain.Document{
		Profile: domain.Profile{
			Name:      username,
			Handle:    "@" + username,
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
			Bio:       "Welcome to my page!",
		},
		LinkGroups: []domain.LinkGroup{
			{
				ID:    newID(),
				Title: "My Links",
				Links: []domain.Link{
					{ID: newID(), Title: "My Website", URL: "https://example.com", Style: domain.LinkStyleFill},
				},
			},
		},
		Socials: []domain.SocialLink{
			{ID: newID(), Platform: "twitter", URL: "https://twitter.com/example"},
		},
		Palettes: []domain.Palette{DefaultPalette()},
		Customization: domain.Customization{
			Theme:              domain.ThemeLight,
			PaletteID:          domain.DefaultPaletteID,
			CustomPaletteName:  "Custom",
			FontID:             "font-sans",
			LinkAnimation:      "none",
			BackgroundImageURL: "",
			CustomColors:       domain.CustomColors{}.Ensure(),
		},
	}
}
