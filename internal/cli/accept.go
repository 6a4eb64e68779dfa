package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/history"
)

// AcceptOptions holds flags for the accept command.
type AcceptOptions struct {
	Justification string
	Breaks        []string
}

// AcceptResult is the JSON payload of the accept command.
type AcceptResult struct {
	Config        string        `json:"config"`
	Coordinate    string        `json:"coordinate"`
	Justification string        `json:"justification"`
	Added         int           `json:"added"`
	Total         int           `json:"total"`
	Revision      *RevisionInfo `json:"revision,omitempty"`
}

// NewAcceptCommand creates the accept command.
func NewAcceptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AcceptOptions{}

	cmd := &cobra.Command{
		Use:   "accept <config> <group:name:version>",
		Short: "Accept API breaks for an artifact version",
		Long: `Record that the given breaks are accepted for one artifact version,
under a justification. The config file is created if it does not exist.

Each --break is either key=value pairs separated by commas (an empty value
is recorded as null) or a JSON object:

  breakledger accept revapi.yaml com.x:lib:2.0 \
    --justification "removed deprecated API" \
    --break code=java.class.removed,old=class com.x.Old,new=`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccept(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Justification, "justification", "j", "", "why the breaks are acceptable (required)")
	cmd.Flags().StringArrayVarP(&opts.Breaks, "break", "b", nil, "break descriptor (repeatable, required)")

	return cmd
}

func runAccept(rootOpts *RootOptions, opts *AcceptOptions, path, coordinate string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if opts.Justification == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, errors.New("--justification is required"))
	}
	if len(opts.Breaks) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, errors.New("at least one --break is required"))
	}

	gnv, err := parseGNV(formatter, coordinate)
	if err != nil {
		return err
	}

	breaks := make([]config.AcceptedBreak, 0, len(opts.Breaks))
	for _, input := range opts.Breaks {
		b, err := parseBreak(input)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, err)
		}
		breaks = append(breaks, b)
	}

	doc, err := loadConfig(formatter, path)
	if err != nil {
		return err
	}

	before := doc.AcceptedBreaksFor(gnv).Len()
	updated := doc.AddAcceptedBreaks(gnv, config.Justification(opts.Justification), breaks)
	after := updated.AcceptedBreaksFor(gnv).Len()

	if err := saveConfig(formatter, path, updated); err != nil {
		return err
	}

	rev, err := recordRevision(cmd.Context(), rootOpts, formatter, path, history.OpAccept, updated)
	if err != nil {
		return err
	}

	result := AcceptResult{
		Config:        path,
		Coordinate:    gnv.String(),
		Justification: opts.Justification,
		Added:         after - before,
		Total:         after,
		Revision:      rev,
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Accepted %d new break(s) for %s (%d total)\n", result.Added, result.Coordinate, result.Total)
	if rev != nil && rev.Recorded {
		fmt.Fprintf(formatter.Writer, "  revision %d (%s)\n", rev.Seq, rev.ID)
	}
	return nil
}
