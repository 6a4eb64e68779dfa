package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/testutil"
	"github.com/roach88/breakledger/internal/value"
)

func TestYAMLDecodeLegacyFixture(t *testing.T) {
	doc, err := YAML().Decode(readFixture(t, "legacy.yaml"))
	require.NoError(t, err)

	assert.True(t, doc.Equal(sampleDocument()))
	assert.Equal(t, 1, doc.LegacyAcceptedBreaks().Len())

	migrated := doc.AcceptedBreaksFor(testutil.GNV("com.x:lib:0.9")).Items()
	require.Len(t, migrated, 1)
	assert.Equal(t, config.DefaultMigrationJustification, migrated[0].Justification)

	v, ok := doc.VersionOverrideFor(testutil.GNV("com.x:lib:1.0"))
	require.True(t, ok)
	assert.Equal(t, "1.0.1", v)
}

func TestYAMLDecodeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\n", "# only a comment\n"} {
		doc, err := YAML().Decode([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.True(t, doc.Equal(config.Empty()))
	}
}

func TestYAMLDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown top-level field", "versionOverrides: {}\nextra: 1\n"},
		{"unknown group field", "acceptedBreaksV2:\n  g:n:1:\n    - justification: j\n      reason: x\n      breaks: []\n"},
		{"scalar document", "hello\n"},
		{"malformed", "versionOverrides: [\n"},
		{"multiple documents", "versionOverrides: {}\n---\nversionOverrides: {}\n"},
		{"float in descriptor", "acceptedBreaks:\n  g:n:1:\n    - code: x\n      score: 0.5\n"},
		{"null descriptor", "acceptedBreaks:\n  g:n:1:\n    - null\n"},
		{"scalar descriptor", "acceptedBreaksV2:\n  g:n:1:\n    - justification: j\n      breaks: [x]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := YAML().Decode([]byte(tt.input))
			require.Error(t, err)

			var de *DecodeError
			assert.True(t, errors.As(err, &de))
			assert.Equal(t, FormatYAML, de.Format)
			assert.True(t, doc.Equal(config.Document{}))
		})
	}
}

func TestYAMLDecodeKeepsDateLikeDescriptorText(t *testing.T) {
	input := []byte(`acceptedBreaks:
  com.x:lib:1.0:
    - {code: "yes", old: 2020-01-01}
`)
	want := config.MustAcceptedBreak(value.ObjectOf(
		value.P("code", value.String("yes")),
		value.P("old", value.String("2020-01-01")),
	))

	doc, err := YAML().Decode(input)
	require.NoError(t, err)
	key := testutil.GNV("com.x:lib:1.0")
	assert.True(t, doc.LegacyAcceptedBreaks().BreaksFor(key).Contains(want))

	asJSON, err := JSON().Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(asJSON), `"old": "2020-01-01"`)
	fromJSON, err := JSON().Decode(asJSON)
	require.NoError(t, err)
	assert.True(t, fromJSON.Equal(doc))

	asYAML, err := YAML().Encode(fromJSON)
	require.NoError(t, err)
	assert.Contains(t, string(asYAML), `old: "2020-01-01"`)
	back, err := YAML().Decode(asYAML)
	require.NoError(t, err)
	assert.True(t, back.Equal(doc))

	again, err := YAML().Encode(back)
	require.NoError(t, err)
	assert.Equal(t, string(asYAML), string(again))
}

func TestYAMLEncodeEmpty(t *testing.T) {
	out, err := YAML().Encode(config.Empty())
	require.NoError(t, err)
	assert.Equal(t, "versionOverrides: {}\nacceptedBreaksV2: {}\n", string(out))
}

func TestYAMLEncodeLayout(t *testing.T) {
	doc := config.Empty().
		AddVersionOverride(testutil.GNV("com.x:lib:1.0"), "1.0.1").
		AddAcceptedBreaks(testutil.GNV("com.x:lib:1.0"), "removed deprecated API",
			[]config.AcceptedBreak{testutil.Removed("class com.x.Old")})

	out, err := YAML().Encode(doc)
	require.NoError(t, err)

	want := strings.Join([]string{
		"versionOverrides:",
		"  com.x:lib:1.0: 1.0.1",
		"acceptedBreaksV2:",
		"  com.x:lib:1.0:",
		"    - justification: removed deprecated API",
		"      breaks:",
		"        - code: java.class.removed",
		"          new: null",
		"          old: class com.x.Old",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestYAMLEncodeNeverWritesLegacyField(t *testing.T) {
	doc, err := YAML().Decode(readFixture(t, "legacy.yaml"))
	require.NoError(t, err)

	out, err := YAML().Encode(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "acceptedBreaks:")
	assert.False(t, strings.HasPrefix(string(out), "---"))
	assert.Contains(t, string(out), string(config.DefaultMigrationJustification))
}

func TestYAMLEncodeQuotesAmbiguousScalars(t *testing.T) {
	doc := config.Empty().AddVersionOverride(testutil.GNV("g:n:1"), "2.0")

	out, err := YAML().Encode(doc)
	require.NoError(t, err)

	back, err := YAML().Decode(out)
	require.NoError(t, err)
	v, ok := back.VersionOverrideFor(testutil.GNV("g:n:1"))
	require.True(t, ok)
	assert.Equal(t, "2.0", v)
}

func TestYAMLRoundTrip(t *testing.T) {
	original := sampleDocument()

	out, err := YAML().Encode(original)
	require.NoError(t, err)
	decoded, err := YAML().Decode(out)
	require.NoError(t, err)

	assert.True(t, decoded.Equal(original))
	assert.Equal(t, 0, decoded.LegacyAcceptedBreaks().Len())

	again, err := YAML().Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}
