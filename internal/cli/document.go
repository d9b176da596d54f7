package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/engine"
	"github.com/MrSnakeDoc/bio/internal/storeclient"
)

var errNothingToChange = errors.New("nothing to change, pass at least one flag")

func (c *cli) showCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				doc, ok := e.Document()
				if !ok {
					return engine.ErrNotLoaded
				}
				if asJSON {
					data, err := json.MarshalIndent(doc, "", "  ")
					if err != nil {
						return fmt.Errorf("encode document: %w", err)
					}
					c.out.Printf("%s\n", data)
					return nil
				}
				printDocument(c.out, doc, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the document as JSON")
	return cmd
}

func printDocument(out io.Writer, doc domain.Document, now time.Time) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	p := doc.Profile
	fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Handle)
	if p.Bio != "" {
		fmt.Fprintf(tw, "%s\t\n", p.Bio)
	}
	c := doc.Customization
	fmt.Fprintf(tw, "theme\t%s, palette %s, font %s\n", c.Theme, c.PaletteID, c.FontID)

	for _, g := range doc.LinkGroups {
		fmt.Fprintf(tw, "\n[%s]\t%s\n", g.ID, g.Title)
		for _, l := range g.Links {
			line := fmt.Sprintf("  %s\t%s\t%s\t%s", l.ID, l.Title, l.URL, l.EffectiveStyle())
			if cd, ok := l.ActiveCountdown(now); ok {
				line += fmt.Sprintf("\t%s until %s", cd.Title, cd.EndsAt.Format(time.RFC3339))
			}
			fmt.Fprintln(tw, line)
		}
	}

	if len(doc.Socials) > 0 {
		fmt.Fprintf(tw, "\nsocials\t\n")
		for _, s := range doc.Socials {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.ID, s.Platform, s.URL)
		}
	}
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				c.out.Printf("password: ")
				line, err := c.in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			s, err := storeclient.NewHTTP(c.api).Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			c.out.Printf("Logged in as %s\n", s.User.Username)
			c.out.Printf("export BIOCTL_USER=%s\nexport BIOCTL_TOKEN=%s\n", s.User.Username, s.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password, read from stdin when empty")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit the profile header",
	}

	var name, handle, avatar, bio string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var p domain.ProfilePatch
			if f.Changed("name") {
				p.Name = &name
			}
			if f.Changed("handle") {
				p.Handle = &handle
			}
			if f.Changed("avatar") {
				p.AvatarURL = &avatar
			}
			if f.Changed("bio") {
				p.Bio = &bio
			}
			if p == (domain.ProfilePatch{}) {
				return errNothingToChange
			}
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.UpdateProfile(p)
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&handle, "handle", "", "handle, ex: @me")
	set.Flags().StringVar(&avatar, "avatar", "", "avatar image URL")
	set.Flags().StringVar(&bio, "bio", "", "short biography")

	cmd.AddCommand(set)
	return cmd
}

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Change the page appearance",
	}
	cmd.AddCommand(c.themeSetCmd(), c.themeApplyCmd())
	return cmd
}

func (c *cli) themeSetCmd() *cobra.Command {
	var paletteID, customName, font, background, animation string
	var light, dark map[string]string
	cmd := &cobra.Command{
		Use:       "set [light|dark]",
		Short:     "Change the theme mode, palette, font or custom colors",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var p domain.CustomizationPatch
			if len(args) == 1 {
				mode := domain.ThemeMode(args[0])
				p.Theme = &mode
			}
			if f.Changed("palette") {
				p.PaletteID = &paletteID
			}
			if f.Changed("custom-name") {
				p.CustomPaletteName = &customName
			}
			if f.Changed("font") {
				if _, ok := catalog.Builtin().Font(font); !ok {
					return unknownPreset("font", font, catalog.Builtin().FontIDs())
				}
				p.FontID = &font
			}
			if f.Changed("background") {
				p.BackgroundImageURL = &background
			}
			if f.Changed("animation") {
				if _, ok := catalog.Builtin().Animation(animation); !ok {
					return unknownPreset("animation", animation, catalog.Builtin().AnimationIDs())
				}
				p.LinkAnimation = &animation
			}
			customChanged := f.Changed("light") || f.Changed("dark")
			if p == (domain.CustomizationPatch{}) && !customChanged {
				return errNothingToChange
			}

			return c.session(cmd.Context(), func(e *engine.Engine) error {
				if customChanged {
					doc, ok := e.Document()
					if !ok {
						return engine.ErrNotLoaded
					}
					cc := doc.Customization.CustomColors
					cc.Light = cc.Light.Merge(cssVars(light))
					cc.Dark = cc.Dark.Merge(cssVars(dark))
					p.CustomColors = &cc
				}
				return e.UpdateCustomization(p)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&paletteID, "palette", "", "palette id to select, \"custom\" for the custom colors")
	f.StringVar(&customName, "custom-name", "", "name of the custom palette")
	f.StringVar(&font, "font", "", "font id")
	f.StringVar(&background, "background", "", "background image URL")
	f.StringVar(&animation, "animation", "", "link animation id")
	f.StringToStringVar(&light, "light", nil, "custom light colors, ex: accent-color=#ff0066")
	f.StringToStringVar(&dark, "dark", nil, "custom dark colors")
	_ = cmd.RegisterFlagCompletionFunc("font", cobra.FixedCompletions(catalog.Builtin().FontIDs(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("animation", cobra.FixedCompletions(catalog.Builtin().AnimationIDs(), cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func unknownPreset(kind, id string, valid []string) error {
	return fmt.Errorf("unknown %s %q, expected one of %s: %w", kind, id, strings.Join(valid, ", "), engine.ErrInvalidArgument)
}

func (c *cli) themeApplyCmd() *cobra.Command {
	var light, dark map[string]string
	cmd := &cobra.Command{
		Use:   "apply <name>",
		Short: "Install a generated theme as the custom palette and select it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := domain.CustomColors{Light: cssVars(light), Dark: cssVars(dark)}
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.ApplyGeneratedTheme(args[0], colors)
			})
		},
	}
	cmd.Flags().StringToStringVar(&light, "light", nil, "light colors of the theme")
	cmd.Flags().StringToStringVar(&dark, "dark", nil, "dark colors of the theme")
	return cmd
}

func (c *cli) paletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Edit saved palettes",
	}

	var name string
	var light, dark map[string]string
	set := &cobra.Command{
		Use:   "set <palette-id>",
		Short: "Rename a palette or change some of its colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("name") && !f.Changed("light") && !f.Changed("dark") {
				return errNothingToChange
			}
			id := args[0]
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				doc, ok := e.Document()
				if !ok {
					return engine.ErrNotLoaded
				}
				i := doc.PaletteIndex(id)
				if i < 0 {
					return fmt.Errorf("palette %q: %w", id, engine.ErrUnknownID)
				}
				var p domain.PalettePatch
				if f.Changed("name") {
					p.Name = &name
				}
				if len(light) > 0 {
					p.Light = doc.Palettes[i].Light.Merge(cssVars(light))
				}
				if len(dark) > 0 {
					p.Dark = doc.Palettes[i].Dark.Merge(cssVars(dark))
				}
				return e.UpdatePalette(id, p)
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "palette name")
	set.Flags().StringToStringVar(&light, "light", nil, "light colors to change")
	set.Flags().StringToStringVar(&dark, "dark", nil, "dark colors to change")

	overwrite := &cobra.Command{
		Use:   "overwrite <palette-id>",
		Short: "Replace a palette with the current custom colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				conf, err := e.OverwritePalette(args[0])
				if err != nil {
					return err
				}
				return c.confirm(conf)
			})
		},
	}

	cmd.AddCommand(set, overwrite)
	return cmd
}

// cssVars turns color flags into a color set, adding the leading "--" of
// CSS variable names when omitted.
func cssVars(m map[string]string) domain.ColorSet {
	if len(m) == 0 {
		return nil
	}
	out := make(domain.ColorSet, len(m))
	for k, v := range m {
		if !strings.HasPrefix(k, "--") {
			k = "--" + k
		}
		out[k] = v
	}
	return out
}
