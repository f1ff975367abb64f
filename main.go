// Package main is the entry point for touchctl.
package main

import (
	"github.com/samber/lo"
	"github.com/touchctl/touchctl/cmd"
	"github.com/touchctl/touchctl/config"
	"github.com/touchctl/touchctl/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
