package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/catalog"
)

func (c *cli) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the built-in palettes, fonts, link animations and suggested platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.Builtin()
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "palettes\t")
			for _, p := range cat.Palettes {
				fmt.Fprintf(tw, "  %s\t%s\n", p.ID, p.Name)
			}
			fmt.Fprintln(tw, "\nfonts\t")
			for _, f := range cat.Fonts {
				fmt.Fprintf(tw, "  %s\t%s\n", f.ID, f.Name)
			}
			fmt.Fprintln(tw, "\nanimations\t")
			for _, a := range cat.Animations {
				fmt.Fprintf(tw, "  %s\t%s\n", a.ID, a.Name)
			}
			fmt.Fprintln(tw, "\nplatforms\t")
			for _, p := range cat.Platforms {
				fmt.Fprintf(tw, "  %s\t\n", p)
			}
			return tw.Flush()
		},
	}
}
