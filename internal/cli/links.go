package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/engine"
)

// linkFlags are the editable fields of a link shared by add and set.
type linkFlags struct {
	title          string
	url            string
	style          string
	countdown      bool
	countdownTitle string
	countdownEnd   string
}

func (lf *linkFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&lf.title, "title", "", "link title")
	f.StringVar(&lf.url, "url", "", "link target URL")
	f.StringVar(&lf.style, "style", "", "link style (fill, outline)")
	f.BoolVar(&lf.countdown, "countdown", false, "show a countdown on the link")
	f.StringVar(&lf.countdownTitle, "countdown-title", "", "countdown label")
	f.StringVar(&lf.countdownEnd, "countdown-end", "", "countdown end, RFC 3339 instant")
}

func (lf *linkFlags) patch(cmd *cobra.Command) domain.LinkPatch {
	f := cmd.Flags()
	var p domain.LinkPatch
	if f.Changed("title") {
		p.Title = &lf.title
	}
	if f.Changed("url") {
		p.URL = &lf.url
	}
	if f.Changed("style") {
		style := domain.LinkStyle(lf.style)
		p.Style = &style
	}
	if f.Changed("countdown") {
		p.IsCountdownEnabled = &lf.countdown
	}
	if f.Changed("countdown-title") {
		p.CountdownTitle = &lf.countdownTitle
	}
	if f.Changed("countdown-end") {
		p.CountdownEndDate = &lf.countdownEnd
	}
	return p
}

func (lf *linkFlags) draft() domain.LinkDraft {
	return domain.LinkDraft{
		Title:              lf.title,
		URL:                lf.url,
		Style:              domain.LinkStyle(lf.style),
		IsCountdownEnabled: lf.countdown,
		CountdownTitle:     lf.countdownTitle,
		CountdownEndDate:   lf.countdownEnd,
	}
}

func (c *cli) linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage links",
	}

	var addFlags linkFlags
	add := &cobra.Command{
		Use:   "add <group-id>",
		Short: "Append a link to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				id, err := e.AddLink(args[0], addFlags.draft())
				if err != nil {
					return err
				}
				c.out.Printf("%s\n", id)
				return nil
			})
		},
	}
	addFlags.register(add)
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("url")

	var setFlags linkFlags
	set := &cobra.Command{
		Use:   "set <link-id>",
		Short: "Change fields of a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := setFlags.patch(cmd)
			if p == (domain.LinkPatch{}) {
				return errNothingToChange
			}
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.UpdateLink(args[0], p)
			})
		},
	}
	setFlags.register(set)

	rm := &cobra.Command{
		Use:   "rm <link-id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				conf, err := e.DeleteLink(args[0])
				if err != nil {
					return err
				}
				return c.confirm(conf)
			})
		},
	}

	move := &cobra.Command{
		Use:   "move <link-id> <group-id>",
		Short: "Move a link to the end of another group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.MoveLinkToGroup(args[0], args[1])
			})
		},
	}

	cmd.AddCommand(add, set, rm, move,
		c.reorderCmd("link", domain.Up, (*engine.Engine).ReorderLink),
		c.reorderCmd("link", domain.Down, (*engine.Engine).ReorderLink),
	)
	return cmd
}

func (c *cli) groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage link groups",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Append an empty group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				id, err := e.AddGroup(args[0])
				if err != nil {
					return err
				}
				c.out.Printf("%s\n", id)
				return nil
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <group-id> <title>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.UpdateGroup(args[0], domain.GroupPatch{Title: &title})
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <group-id>",
		Short: "Delete a group and all its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				conf, err := e.DeleteGroup(args[0])
				if err != nil {
					return err
				}
				return c.confirm(conf)
			})
		},
	}

	organize := &cobra.Command{
		Use:   "organize <suggestions.json>",
		Short: "Regroup every link from a list of suggested groups",
		Long: "Regroup every link from a JSON array of {\"groupTitle\", \"linkIds\"} objects.\n" +
			"Links no group mentions end up in a trailing Miscellaneous group.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read suggestions: %w", err)
			}
			var suggestions []engine.GroupSuggestion
			if err := json.Unmarshal(data, &suggestions); err != nil {
				return fmt.Errorf("parse suggestions: %w", err)
			}
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.ApplyGroupSuggestions(suggestions)
			})
		},
	}

	cmd.AddCommand(add, rename, rm, organize,
		c.reorderCmd("group", domain.Up, (*engine.Engine).ReorderGroup),
		c.reorderCmd("group", domain.Down, (*engine.Engine).ReorderGroup),
	)
	return cmd
}

// reorderCmd builds the up or down subcommand of an ordered collection.
func (c *cli) reorderCmd(kind string, dir domain.Direction, reorder func(*engine.Engine, string, domain.Direction) error) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <%s-id>", dir, kind),
		Short: fmt.Sprintf("Swap a %s with its %s neighbor", kind, dir),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return reorder(e, args[0], dir)
			})
		},
	}
}
