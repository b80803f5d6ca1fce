package main

import (
	"fmt"

	"github.com/jmilosz/sitechat"
	"github.com/jmilosz/sitechat/chat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.FindSiteByURL(deps.Ctx, c.URL)
	if err != nil {
		if sitechat.ErrorCode(err) == sitechat.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'sitechat scrape' to crawl it first.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		}
		return err
	}

	if site.VectorIndexID == "" {
		fmt.Fprintf(deps.Stderr, "error: site %q has no index. Use 'sitechat scrape' to crawl it first.\n", c.URL)
		return sitechat.Errorf(sitechat.ENOTFOUND, "site %q not indexed", c.URL)
	}

	svc := chat.NewService(deps.Completer, deps.Store)
	result, err := svc.Answer(deps.Ctx, site.VectorIndexID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Answer)
	fmt.Fprintf(deps.Stderr, "(answered from %d retrieved passages)\n", result.SourceCount)
	return nil
}
