package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/history"
)

// OverrideResult is the JSON payload of the override command.
type OverrideResult struct {
	Config     string        `json:"config"`
	Coordinate string        `json:"coordinate"`
	Version    string        `json:"version"`
	Previous   *string       `json:"previous,omitempty"`
	Revision   *RevisionInfo `json:"revision,omitempty"`
}

// NewOverrideCommand creates the override command.
func NewOverrideCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override <config> <group:name:version> <version>",
		Short: "Override the version used for an artifact",
		Long: `Record a version to use in place of the inferred one for an artifact
version. Any earlier override for the same coordinate is replaced.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverride(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
	return cmd
}

func runOverride(opts *RootOptions, path, coordinate, version string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	gnv, err := parseGNV(formatter, coordinate)
	if err != nil {
		return err
	}

	doc, err := loadConfig(formatter, path)
	if err != nil {
		return err
	}

	result := OverrideResult{Config: path, Coordinate: gnv.String(), Version: version}
	if prev, ok := doc.VersionOverrideFor(gnv); ok {
		result.Previous = &prev
	}

	updated := doc.AddVersionOverride(gnv, version)
	if err := saveConfig(formatter, path, updated); err != nil {
		return err
	}

	result.Revision, err = recordRevision(cmd.Context(), opts, formatter, path, history.OpOverride, updated)
	if err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if result.Previous != nil {
		fmt.Fprintf(formatter.Writer, "✓ %s now overridden to %s (was %s)\n", result.Coordinate, version, *result.Previous)
	} else {
		fmt.Fprintf(formatter.Writer, "✓ %s now overridden to %s\n", result.Coordinate, version)
	}
	return nil
}
