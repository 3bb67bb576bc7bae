package commands

import "io"

// SetTerminal overrides terminal detection for the dev banner.
func (c *CLI) SetTerminal(isTerminal func(io.Writer) bool) {
	c.isTerminal = isTerminal
}

// WriteReady exposes the dev server banner for tests.
var WriteReady = writeReady
