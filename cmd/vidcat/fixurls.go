package main

import (
	"fmt"

	"github.com/fwojciec/vidcat"
)

// Run executes the fix-urls command.
func (c *FixURLsCmd) Run(deps *Dependencies) error {
	res, err := deps.Writer.RepairPlayerURLs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Checked %d videos: %d updated, %d failed\n", res.Checked, res.Updated, res.Failed)
	return nil
}
