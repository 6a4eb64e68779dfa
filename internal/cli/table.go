package cli

import (
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/roach88/breakledger/internal/value"
)

// newTable creates a table that renders to w with the standard styling.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// describeBreak renders a descriptor on one line with sorted keys.
func describeBreak(descriptor value.Object) string {
	data, err := descriptor.MarshalJSON()
	if err != nil {
		return "<invalid descriptor>"
	}
	return string(data)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
