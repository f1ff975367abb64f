package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/touchctl/touchctl/core"
	"github.com/touchctl/touchctl/gesture"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("report", "r", false, "Generate the JSON Schema for replay reports instead of touch events")
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd prints the JSON schema of a touch event line or a replay report.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema of touch events",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.DoNotReference = true

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("report")):
			schema = reflector.Reflect(&core.Report{})
		default:
			schema = reflector.Reflect(&gesture.Event{})
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
