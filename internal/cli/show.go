package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Config           string            `json:"config"`
	VersionOverrides map[string]string `json:"version_overrides"`
	AcceptedBreaks   []BreakEntry      `json:"accepted_breaks"`
	LegacyVersions   int               `json:"legacy_versions"`
}

// BreakEntry is one accepted (justification, break) pair of one version.
type BreakEntry struct {
	Coordinate    string       `json:"coordinate"`
	Justification string       `json:"justification"`
	Break         value.Object `json:"break"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <config>",
		Short: "Show version overrides and accepted breaks",
		Long: `Show the effective contents of a config file.

Breaks recorded in the v1 layout are shown as migrated, with the default
migration justification.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, err := loadConfig(formatter, path)
	if err != nil {
		return err
	}

	result := buildShowResult(path, doc)
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	renderShow(formatter.Writer, result)
	return nil
}

func buildShowResult(path string, doc config.Document) ShowResult {
	result := ShowResult{
		Config:           path,
		VersionOverrides: map[string]string{},
		AcceptedBreaks:   []BreakEntry{},
		LegacyVersions:   doc.LegacyAcceptedBreaks().Len(),
	}

	overrides := doc.VersionOverrides()
	for _, key := range overrides.Keys() {
		v, _ := overrides.Get(key)
		result.VersionOverrides[key.String()] = v
	}

	store := doc.AcceptedBreaksV2()
	for _, key := range store.Keys() {
		for _, pair := range store.AcceptedBreaksFor(key).Items() {
			result.AcceptedBreaks = append(result.AcceptedBreaks, BreakEntry{
				Coordinate:    key.String(),
				Justification: pair.Justification.String(),
				Break:         pair.Break.Descriptor(),
			})
		}
	}
	return result
}

func renderShow(w io.Writer, result ShowResult) {
	fmt.Fprintln(w, text.Bold.Sprint("Version overrides"))
	if len(result.VersionOverrides) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		t := newTable(w)
		t.AppendHeader(table.Row{"Coordinate", "Override"})
		for _, key := range sortedKeys(result.VersionOverrides) {
			t.AppendRow(table.Row{key, result.VersionOverrides[key]})
		}
		t.Render()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, text.Bold.Sprint("Accepted breaks"))
	if len(result.AcceptedBreaks) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		t := newTable(w)
		t.AppendHeader(table.Row{"Coordinate", "Justification", "Break"})
		for _, entry := range result.AcceptedBreaks {
			t.AppendRow(table.Row{entry.Coordinate, entry.Justification, describeBreak(entry.Break)})
		}
		t.Render()
	}

	if result.LegacyVersions > 0 {
		fmt.Fprintf(w, "\n%s %d version(s) use the v1 layout; run migrate to rewrite them\n",
			text.FgYellow.Sprint("note:"), result.LegacyVersions)
	}
}
