package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/where"
)

// clearTarget is a directory whose contents can be wiped.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"logs", "logs", mo.Some("l"), where.Logs},
	{"recordings", "recordings", mo.Some("r"), where.Recordings},
	{"temporary files", "temp", mo.Some("t"), where.Temp},
	{"cache", "cache", mo.Some("c"), where.Cache},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes logs, recorded touch streams, cached versions and stale sockets.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear logs, recordings, cached data and temporary files",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			handleErr(filesystem.API().RemoveAll(target.location()))
			printSuccess("%s cleared", target.name)
		}
	},
}
