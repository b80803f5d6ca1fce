package main

import (
	"fmt"

	"github.com/jmilosz/sitechat"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sitechat.Errorf(sitechat.EINVALID, "use --force to confirm deletion")
	}

	site, err := deps.Sites.FindSiteByURL(deps.Ctx, c.URL)
	if err != nil {
		if sitechat.ErrorCode(err) == sitechat.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'sitechat list' to see registered sites.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		}
		return err
	}

	report, err := deps.Deleter.DeleteSite(deps.Ctx, site.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "partial deletion: store=%t export=%t pages=%d site=%t\n",
			report.StoreRemoved, report.ExportRemoved, report.PagesDeleted, report.SiteDeleted)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %q: vector store removed=%t, export removed=%t, %d pages deleted\n",
		site.URL, report.StoreRemoved, report.ExportRemoved, report.PagesDeleted)
	return nil
}
