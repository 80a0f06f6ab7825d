// Command vibes is the Weather Vibes map client.
package main

import (
	"github.com/weathervibes/weathervibes/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit
	cli.Execute()
}
