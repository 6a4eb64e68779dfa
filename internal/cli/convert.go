package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/breakledger/internal/codec"
	"github.com/roach88/breakledger/internal/history"
)

// ConvertResult is the JSON payload of the convert command.
type ConvertResult struct {
	Input        string        `json:"input"`
	Output       string        `json:"output"`
	InputFormat  codec.Format  `json:"input_format"`
	OutputFormat codec.Format  `json:"output_format"`
	Revision     *RevisionInfo `json:"revision,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Re-encode a config file between YAML and JSON",
		Long: `Read a config file and write it to another path, choosing each
framing from the file extension (.yaml/.yml or .json).

The output is always in the v2 layout.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runConvert(opts *RootOptions, input, output string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	inFormat, err := codec.FormatForPath(input)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, err)
	}
	outFormat, err := codec.FormatForPath(output)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, err)
	}
	if historyKey(input) == historyKey(output) {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, errors.New("input and output are the same file; use migrate"))
	}

	doc, err := loadConfig(formatter, input)
	if err != nil {
		return err
	}
	if err := saveConfig(formatter, output, doc); err != nil {
		return err
	}

	result := ConvertResult{
		Input:        input,
		Output:       output,
		InputFormat:  inFormat,
		OutputFormat: outFormat,
	}
	result.Revision, err = recordRevision(cmd.Context(), opts, formatter, output, history.OpConvert, doc)
	if err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Converted %s (%s) to %s (%s)\n", input, inFormat, output, outFormat)
	return nil
}
