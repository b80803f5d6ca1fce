package main

import (
	"fmt"

	"github.com/jmilosz/sitechat"
)

// Run executes the reconcile command.
func (c *ReconcileCmd) Run(deps *Dependencies) error {
	fixed, err := deps.Auditor.Reconcile(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if fixed == 0 {
		fmt.Fprintln(deps.Stdout, "All index references are consistent.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Cleared %d stale index reference(s).\n", fixed)
	return nil
}
