package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/engine"
)

func (c *cli) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the stored document to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				data, err := e.Export(cmd.Context())
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = domain.ExportFileName(e.Username())
				}
				if err := os.WriteFile(path, data, 0o600); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				c.out.Printf("%s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file, defaults to bio_backup_<user>.json")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored document with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return c.session(cmd.Context(), func(e *engine.Engine) error {
				return e.Import(cmd.Context(), data)
			})
		},
	}
}
