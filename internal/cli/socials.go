package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/engine"
)

func (c *cli) socialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Manage social links",
	}

	var platform, url string
	add := &cobra.Command{
		Use:   "add",
		Short: "Append a social link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				id, err := e.AddSocial()
				if err != nil {
					return err
				}
				if f.Changed("platform") {
					if err := e.UpdateSocial(id, domain.SocialPlatform, platform); err != nil {
						return err
					}
				}
				if f.Changed("url") {
					if err := e.UpdateSocial(id, domain.SocialURL, url); err != nil {
						return err
					}
				}
				c.out.Printf("%s\n", id)
				return nil
			})
		},
	}
	platforms := catalog.Builtin().Platforms
	add.Flags().StringVar(&platform, "platform", "", "platform name, suggested: "+strings.Join(platforms, ", "))
	add.Flags().StringVar(&url, "url", "", "profile URL")
	_ = add.RegisterFlagCompletionFunc("platform", cobra.FixedCompletions(platforms, cobra.ShellCompDirectiveNoFileComp))

	set := &cobra.Command{
		Use:       "set <social-id> <platform|url> <value>",
		Short:     "Change one field of a social link",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{string(domain.SocialPlatform), string(domain.SocialURL)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.UpdateSocial(args[0], domain.SocialField(args[1]), args[2])
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <social-id>",
		Short: "Delete a social link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.DeleteSocial(args[0])
			})
		},
	}

	cmd.AddCommand(add, set, rm,
		c.reorderCmd("social", domain.Up, (*engine.Engine).ReorderSocial),
		c.reorderCmd("social", domain.Down, (*engine.Engine).ReorderSocial),
	)
	return cmd
}
