package cli

import (
	"errors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/history"
)

// hashDisplayLength is how much of a document hash the text table shows.
const hashDisplayLength = 12

// HistoryEntry is one revision in the history command's JSON payload.
type HistoryEntry struct {
	Seq       int64  `json:"seq"`
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Hash      string `json:"hash"`
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Config    string         `json:"config"`
	Revisions []HistoryEntry `json:"revisions"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <config>",
		Short: "List recorded revisions of a config file",
		Long: `List the revisions recorded for a config file in the revision log
named by --history, oldest first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runHistory(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if opts.History == "" {
		return formatter.Fail(ExitCommandError, ErrCodeNoHistoryFlag, errors.New("--history is required"))
	}

	store, err := history.Open(opts.History)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	defer store.Close()

	revisions, err := store.List(cmd.Context(), historyKey(path))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, err)
	}

	result := HistoryResult{Config: path, Revisions: make([]HistoryEntry, 0, len(revisions))}
	for _, rev := range revisions {
		result.Revisions = append(result.Revisions, HistoryEntry{
			Seq:       rev.Seq,
			ID:        rev.ID,
			Operation: string(rev.Operation),
			Hash:      rev.DocumentHash,
		})
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if len(result.Revisions) == 0 {
		return formatter.Success("No revisions recorded for " + path)
	}

	t := newTable(formatter.Writer)
	t.AppendHeader(table.Row{"Seq", "ID", "Operation", "Hash"})
	for _, entry := range result.Revisions {
		hash := entry.Hash
		if len(hash) > hashDisplayLength {
			hash = hash[:hashDisplayLength]
		}
		t.AppendRow(table.Row{entry.Seq, entry.ID, entry.Operation, hash})
	}
	t.Render()
	return nil
}
