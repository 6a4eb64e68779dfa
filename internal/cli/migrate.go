package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/history"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	Output string
}

// MigrateResult is the JSON payload of the migrate command.
type MigrateResult struct {
	Source         string        `json:"source"`
	Output         string        `json:"output"`
	LegacyVersions int           `json:"legacy_versions"`
	LegacyBreaks   int           `json:"legacy_breaks"`
	Revision       *RevisionInfo `json:"revision,omitempty"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate <config>",
		Short: "Rewrite a config file in the v2 layout",
		Long: `Rewrite a config file so that every accepted break carries a
justification. Breaks from the v1 "acceptedBreaks" layout receive the
default migration justification.

The file is rewritten in place unless --output names another file. The
output format follows the output file's extension.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the migrated file here instead of in place")

	return cmd
}

func runMigrate(rootOpts *RootOptions, opts *MigrateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	output := opts.Output
	if output == "" {
		output = path
	}

	doc, err := loadConfig(formatter, path)
	if err != nil {
		return err
	}

	legacy := doc.LegacyAcceptedBreaks()
	result := MigrateResult{
		Source:         path,
		Output:         output,
		LegacyVersions: legacy.Len(),
	}
	for _, key := range legacy.Keys() {
		result.LegacyBreaks += legacy.BreaksFor(key).Len()
	}
	formatter.VerboseLog("Upgrading %d legacy break(s) across %d version(s)", result.LegacyBreaks, result.LegacyVersions)

	if err := saveConfig(formatter, output, doc); err != nil {
		return err
	}

	result.Revision, err = recordRevision(cmd.Context(), rootOpts, formatter, output, history.OpMigrate, doc)
	if err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if result.LegacyVersions == 0 {
		fmt.Fprintf(formatter.Writer, "✓ %s already uses the v2 layout\n", path)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ Migrated %d break(s) across %d version(s) to %s\n",
		result.LegacyBreaks, result.LegacyVersions, output)
	return nil
}
