package main

import (
	"fmt"

	"github.com/fwojciec/vidcat"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := vidcat.VideoFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.Search != "" {
		filter.Search = &c.Search
	}

	videos, err := deps.Videos.FindVideos(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vidcat.ErrorMessage(err))
		return err
	}

	if len(videos) == 0 {
		fmt.Fprintln(deps.Stdout, "No videos found. Use 'vidcat scrape' to collect some.")
		return nil
	}

	for _, v := range videos {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n", v.ID, v.Source, v.Category, v.Title, v.PlayerURL)
	}

	return nil
}
