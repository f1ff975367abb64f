package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/touchctl/touchctl/color"
	"github.com/touchctl/touchctl/core"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/gesture"
	"github.com/touchctl/touchctl/style"
	"github.com/touchctl/touchctl/util"
	"github.com/touchctl/touchctl/where"
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Float64P("duration", "d", 120, "Media duration in seconds of the simulated engine")
	replayCmd.Flags().Float64P("position", "p", 0, "Starting playback position in seconds")
	replayCmd.Flags().Bool("paused", false, "Start with playback paused")
	replayCmd.Flags().Duration("settle", time.Second, "Virtual time to keep running after the last event")
	replayCmd.Flags().BoolP("json", "j", false, "Print the report as JSON")
	replayCmd.Flags().BoolP("calls", "c", false, "List every property write and command")

	replayCmd.SetOut(os.Stdout)
}

// resolveRecording finds name as given, or inside the recordings directory.
func resolveRecording(name string) (string, error) {
	if exists, _ := filesystem.API().Exists(name); exists {
		return name, nil
	}

	recorded := filepath.Join(where.Recordings(), name)
	if exists, _ := filesystem.API().Exists(recorded); exists {
		return recorded, nil
	}

	return "", fmt.Errorf("recording %s not found", name)
}

// replayCmd runs a recorded touch stream against a simulated engine.
var replayCmd = &cobra.Command{
	Use:   "replay <file|->",
	Short: "Replay a recorded touch stream against a simulated engine",
	Long: `Replay a recorded touch stream against an in-memory engine on a virtual clock.
Nothing is played and no files are written. The stream is one JSON event per line,
as produced by "play --record"; use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			path, err := resolveRecording(args[0])
			handleErr(err)

			filesystem.SetReadOnly()

			f, err := filesystem.API().Open(path)
			handleErr(err)
			defer util.Ignore(f.Close)
			in = f
		}

		events, err := gesture.ReadAll(in)
		handleErr(err)

		report := core.Replay(events, core.LoadOptions(), core.ReplayOptions{
			Duration: lo.Must(cmd.Flags().GetFloat64("duration")),
			Position: lo.Must(cmd.Flags().GetFloat64("position")),
			Paused:   lo.Must(cmd.Flags().GetBool("paused")),
			Settle:   lo.Must(cmd.Flags().GetDuration("settle")),
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(report))
			return
		}

		printReport(cmd.OutOrStdout(), report, lo.Must(cmd.Flags().GetBool("calls")))
	},
}

func printReport(w io.Writer, r core.Report, calls bool) {
	label := style.New().Foreground(color.HiPurple).Width(12).Render
	value := style.Bold

	rows := []lo.Tuple2[string, string]{
		{A: "Events", B: fmt.Sprintf("%d over %s", r.Events, time.Duration(r.ElapsedMs)*time.Millisecond)},
		{A: "Playback", B: lo.Ternary(r.Paused, "paused", "playing") + fmt.Sprintf(" at %s, speed %.2gx", util.FormatSeconds(r.Position), r.Speed)},
		{A: "Volume", B: fmt.Sprintf("%d (engine %d%%)", r.Volume, r.Engine)},
		{A: "Brightness", B: fmt.Sprintf("%.0f%%", r.Brightness*100)},
		{A: "Zoom", B: fmt.Sprintf("%.2fx, pan (%.0f, %.0f)", r.Zoom, r.PanX, r.PanY)},
		{A: "Calls", B: util.Quantify(len(r.Calls), "call", "calls")},
	}

	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s %s\n", label(row.A), value(row.B))
	}

	if !calls || len(r.Calls) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	for i, call := range r.Calls {
		_, _ = fmt.Fprintf(w, "%s %s\n", style.Faint(fmt.Sprintf("%4d", i+1)), colorCall(call))
	}
}

// colorCall highlights the property name of a write, or the verb of a command.
func colorCall(call string) string {
	if name, v, ok := strings.Cut(call, "="); ok {
		return style.Fg(color.Purple)(name) + "=" + style.Fg(color.Yellow)(v)
	}

	verb, rest, _ := strings.Cut(call, " ")
	return style.Fg(color.Cyan)(verb) + " " + rest
}
