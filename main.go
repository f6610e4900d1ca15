// Package main is the entry point for the gense application.
package main

import (
	"github.com/gense-cli/gense/cmd"
	"github.com/gense-cli/gense/config"
	"github.com/gense-cli/gense/internal/cache"
	"github.com/gense-cli/gense/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired cache entries are swept in the background on every start.
	cache.CollectGarbage()

	cmd.Execute()
}
