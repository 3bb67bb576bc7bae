package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/spritz/internal/app"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject the sprite into a single HTML page",
		Long: "Inject the sprite into a single HTML page at the configured position.\n" +
			"The page is read from --in (default stdin) and written to --out (default stdout).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inPath, _ := cmd.Flags().GetString("in")
			outPath, _ := cmd.Flags().GetString("out")

			in := cmd.InOrStdin()
			if inPath != "" {
				// #nosec G304 -- path is provided by the user
				f, err := os.Open(inPath)
				if err != nil {
					return zerr.With(zerr.Wrap(err, domain.ErrPageReadFailed.Error()), "path", inPath)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			var out io.Writer = cmd.OutOrStdout()
			var file *os.File
			if outPath != "" {
				// #nosec G304 -- path is provided by the user
				f, err := os.Create(outPath)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to create page"), "path", outPath)
				}
				file = f
				out = f
			}

			err := c.app.Inject(cmd.Context(), app.InjectOptions{
				Config: configOptions(cmd),
				In:     in,
				Out:    out,
			})
			if file != nil {
				if closeErr := file.Close(); err == nil && closeErr != nil {
					err = zerr.With(zerr.Wrap(closeErr, "failed to write page"), "path", outPath)
				}
			}
			return err
		},
	}

	cmd.Flags().StringP("in", "i", "", "Read the page from this file instead of stdin")
	cmd.Flags().StringP("out", "o", "", "Write the page to this file instead of stdout")

	return cmd
}
