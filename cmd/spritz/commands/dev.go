package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/spritz/internal/app"
	"go.trai.ch/spritz/internal/build"
	"go.trai.ch/spritz/internal/ui/output"
	"go.trai.ch/spritz/internal/ui/style"
)

func (c *CLI) newDevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dev",
		Short: "Serve pages with a live sprite that follows icon changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stderr := cmd.ErrOrStderr()
			interactive := c.isTerminal(stderr)

			return c.app.Dev(cmd.Context(), app.DevOptions{
				Config: configOptions(cmd),
				OnReady: func(addr string) {
					writeReady(stderr, addr, interactive)
				},
			})
		},
	}
}

// writeReady announces the dev server. Terminals get the styled banner;
// everything else a single plain line.
func writeReady(w io.Writer, addr string, interactive bool) {
	url := "http://" + addr + "/"
	if !interactive {
		_, _ = fmt.Fprintf(w, "spritz dev server listening on %s\n", url)
		return
	}

	r := output.Renderer(w)
	title := style.Title.Renderer(r)
	label := style.Label.Renderer(r)
	value := style.Value.Renderer(r)

	_, _ = fmt.Fprintf(w, "\n  %s %s\n\n  %s %s %s\n  %s %s\n\n",
		title.Render("spritz"),
		label.Render(build.Version),
		value.Render(style.Arrow),
		label.Render("Local:"),
		value.Render(url),
		label.Render(style.Arrow),
		label.Render("press Ctrl+C to stop"),
	)
}
