package main

import (
	"fmt"

	"github.com/fwojciec/arxharvest"
	"github.com/fwojciec/arxharvest/harvest"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	progress := func(p harvest.ProgressEvent) {
		fmt.Fprintf(deps.Stdout, "page %d (offset %d): %d results, %d total\n",
			p.Page, p.Offset, p.Results, p.Total)
	}

	result, runErr := deps.Harvester.Run(deps.Ctx, c.URL, progress)

	// Keep whatever pages were staged, even when the run failed partway.
	if deps.Archive != nil && result != nil {
		if err := deps.Archive.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error archiving pages: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if result.Interrupted != nil {
		fmt.Fprintf(deps.Stderr, "harvest interrupted: %s\n", arxharvest.ErrorMessage(result.Interrupted))
		// A partial save is still a success; a run that yielded nothing is not.
		if len(result.Records) == 0 {
			return result.Interrupted
		}
	}

	if !result.Saved {
		fmt.Fprintln(deps.Stdout, "No records could be extracted")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d records across %d pages\n", len(result.Records), result.Pages)
	fmt.Fprintf(deps.Stdout, "Saved to %s\n", c.Out)
	return nil
}
