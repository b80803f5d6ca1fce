package main

import (
	"fmt"

	"github.com/jmilosz/sitechat"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.FindSiteByURL(deps.Ctx, c.URL)
	if err != nil {
		if sitechat.ErrorCode(err) != sitechat.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
		site = &sitechat.Site{URL: c.URL}
		if err := deps.Sites.CreateSite(deps.Ctx, site); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", c.URL, site.ID)
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	records := result.Records
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages could be crawled from %s (blocked or unreachable); storing placeholder content.\n", c.URL)
		records = sitechat.PlaceholderRecords(c.URL)
	}
	for _, r := range records {
		r.SiteID = site.ID
	}

	// Replace the previous crawl's pages wholesale.
	if _, err := deps.Pages.DeletePagesBySite(deps.Ctx, site.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}
	if err := deps.Pages.CreatePages(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if title := records[0].Title; title != "" && title != site.Title {
		if _, err := deps.Sites.UpdateSite(deps.Ctx, site.ID, sitechat.SiteUpdate{Title: &title}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
	}

	indexID, err := deps.Pipeline.Index(deps.Ctx, site, records)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	exportPath, err := deps.Exports.Export(records, indexID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	words := 0
	for _, r := range records {
		words += r.WordCount
	}
	fmt.Fprintf(deps.Stdout, "Crawled %s: %d pages saved (%d words), %d denied, %d failed\n",
		c.URL, len(records), words, result.Denied, result.Failed)
	fmt.Fprintf(deps.Stdout, "Export written to %s\n", exportPath)
	return nil
}
