package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const legacyYAML = `versionOverrides:
  com.x:lib:1.0: 1.0.1
acceptedBreaks:
  com.x:lib:0.9:
    - code: java.class.removed
      old: class com.x.Gone
      new: null
    - code: java.method.removed
      old: method void com.x.Foo::bar()
      new: null
acceptedBreaksV2:
  com.x:lib:1.0:
    - justification: removed deprecated API
      breaks:
        - code: java.class.removed
          old: class com.x.Old
          new: null
`

// runCommand executes a single command with its own stdout buffer.
func runCommand(t *testing.T, opts *RootOptions, newCmd func(*RootOptions) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeConfig writes content to name inside a temp dir and returns the path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// decodeData unmarshals a JSON envelope and its data payload.
func decodeData(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var resp struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp.CLIResponse
}
