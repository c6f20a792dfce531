package main

import (
	"fmt"

	"github.com/fwojciec/vidcat"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return vidcat.Errorf(vidcat.EINVALID, "use --force to confirm deletion")
	}

	var firstErr error
	for _, id := range c.IDs {
		if err := deps.Videos.DeleteVideo(deps.Ctx, id); err != nil {
			if vidcat.ErrorCode(err) == vidcat.ENOTFOUND {
				fmt.Fprintf(deps.Stderr, "error: video %q not found. Use 'vidcat list' to see stored videos.\n", id)
			} else {
				fmt.Fprintf(deps.Stderr, "error: %s\n", vidcat.ErrorMessage(err))
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(deps.Stdout, "Deleted video %s\n", id)
	}

	return firstErr
}
