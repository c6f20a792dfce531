package main

import "fmt"

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, s := range deps.Sites {
		fmt.Fprintf(deps.Stdout, "%-12s %s\n", s.Name, s.URLTemplate)
	}
	return nil
}
