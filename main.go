// egressctl – Azure default outbound access assessment CLI
// Read-only scanner: inventories VNets, subnets, and NICs across
// subscriptions, classifies each subnet's egress posture, and produces
// HTML/JSON/CSV reports.
package main

import (
	"os"
	"time"

	"github.com/kjourdan1/egressctl/cmd"
	"github.com/kjourdan1/egressctl/internal/exitcode"
	"github.com/kjourdan1/egressctl/internal/history"
	"github.com/kjourdan1/egressctl/internal/output"
	_ "github.com/kjourdan1/egressctl/schemas"
)

func main() {
	start := time.Now()
	if err := cmd.Execute(); err != nil {
		code := exitcode.Of(err)
		event := history.BuildEvent(os.Args, "failure", code, time.Since(start))
		_ = history.Write(event)
		output.PrintError(err)
		os.Exit(code)
	}

	event := history.BuildEvent(os.Args, "success", exitcode.OK, time.Since(start))
	_ = history.Write(event)
}
