package main

import (
	"fmt"

	"github.com/jmilosz/sitechat"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, sitechat.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'sitechat scrape' to crawl one.")
		return nil
	}

	for _, s := range sites {
		status := "not indexed"
		if s.VectorIndexID != "" && deps.Store.Valid(s.VectorIndexID) {
			status = "indexed"
		}
		title := s.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  [%s]\n", s.ID, s.URL, title, status)
	}

	return nil
}
