package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Break string
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Artifact string           `json:"artifact"`
	Breaks   []FlattenedEntry `json:"breaks"`
	Query    value.Object     `json:"query,omitempty"`
	Accepted *bool            `json:"accepted,omitempty"`
}

// FlattenedEntry is one break accepted for some version of the artifact.
type FlattenedEntry struct {
	Break         value.Object `json:"break"`
	Justification string       `json:"justification"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <config> <group:name>",
		Short: "List breaks accepted for any version of an artifact",
		Long: `List every break accepted for any version of an artifact, with its
justification.

With --break, report whether that exact break is accepted. The command
exits with status 1 when it is not.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Break, "break", "", "break to look for (key=value,... or a JSON object)")

	return cmd
}

func runCheck(rootOpts *RootOptions, opts *CheckOptions, path, artifact string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	gan, err := parseGAN(formatter, artifact)
	if err != nil {
		return err
	}

	var query *config.AcceptedBreak
	if opts.Break != "" {
		b, err := parseBreak(opts.Break)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, err)
		}
		query = &b
	}

	doc, err := loadConfig(formatter, path)
	if err != nil {
		return err
	}

	flattened := doc.AcceptedBreaks(gan)
	result := CheckResult{Artifact: gan.String(), Breaks: []FlattenedEntry{}}
	var matching []FlattenedEntry
	for _, fb := range flattened.Items() {
		entry := FlattenedEntry{Break: fb.Break.Descriptor(), Justification: fb.Justification.String()}
		result.Breaks = append(result.Breaks, entry)
		if query != nil && fb.Break == *query {
			matching = append(matching, entry)
		}
	}

	if query == nil {
		return outputCheckList(formatter, result)
	}

	accepted := len(matching) > 0
	result.Query = query.Descriptor()
	result.Accepted = &accepted
	return outputCheckQuery(formatter, result, matching)
}

func outputCheckList(formatter *OutputFormatter, result CheckResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if len(result.Breaks) == 0 {
		fmt.Fprintf(formatter.Writer, "No breaks accepted for %s\n", result.Artifact)
		return nil
	}

	t := newTable(formatter.Writer)
	t.SetTitle(result.Artifact)
	t.AppendHeader(table.Row{"Break", "Justification"})
	for _, entry := range result.Breaks {
		t.AppendRow(table.Row{describeBreak(entry.Break), entry.Justification})
	}
	t.Render()
	return nil
}

func outputCheckQuery(formatter *OutputFormatter, result CheckResult, matching []FlattenedEntry) error {
	if *result.Accepted {
		if formatter.IsJSON() {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ Accepted for %s\n", result.Artifact)
		for _, entry := range matching {
			fmt.Fprintf(formatter.Writer, "  justification: %s\n", entry.Justification)
		}
		return nil
	}

	message := fmt.Sprintf("break %s is not accepted for %s", describeBreak(result.Query), result.Artifact)
	if formatter.IsJSON() {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: ErrCodeNotAccepted, Message: message},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Not accepted for %s\n", result.Artifact)
	}
	return NewExitError(ExitFailure, message)
}
