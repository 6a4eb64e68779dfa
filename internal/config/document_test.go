package config_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/testutil"
)

func TestEmptyDocumentAnswersNothing(t *testing.T) {
	doc := config.Empty()

	_, ok := doc.VersionOverrideFor(testutil.GNV("g:n:1"))
	assert.False(t, ok)
	assert.True(t, doc.AcceptedBreaksFor(testutil.GNV("g:n:1")).IsEmpty())
	assert.True(t, doc.AcceptedBreaks(testutil.GAN("g:n")).IsEmpty())
	assert.Equal(t, 0, doc.AcceptedBreaksV2().Len())
	assert.Equal(t, 0, doc.LegacyAcceptedBreaks().Len())
	assert.True(t, doc.Equal(config.New(config.Fields{})))
}

func TestNewMigratesLegacyBreaks(t *testing.T) {
	b1 := testutil.Removed("class com.x.Old")
	doc := config.New(config.Fields{
		LegacyAcceptedBreaks: config.NewLegacyAcceptedBreaks(map[config.GroupNameVersion][]config.AcceptedBreak{
			testutil.GNV("com.x:lib:1.0"): {b1},
		}),
	})

	assert.True(t, doc.AcceptedBreaksFor(testutil.GNV("com.x:lib:1.0")).Equal(config.NewSet(
		config.JustifiedBreak{Justification: config.DefaultMigrationJustification, Break: b1},
	)))
	assert.True(t, doc.AcceptedBreaks(testutil.GAN("com.x:lib")).Equal(config.NewSet(
		config.FlattenedBreak{Break: b1, Justification: config.DefaultMigrationJustification},
	)))
	assert.Equal(t, 1, doc.LegacyAcceptedBreaks().Len(), "decoded input is kept for inspection")
	assert.Equal(t, 0, doc.NativeAcceptedBreaks().Len())
}

func TestNewMergesLegacyWithNative(t *testing.T) {
	key := testutil.GNV("g:n:1")
	a := testutil.Removed("class A")
	b := testutil.Removed("class B")

	doc := config.New(config.Fields{
		LegacyAcceptedBreaks: config.NewLegacyAcceptedBreaks(map[config.GroupNameVersion][]config.AcceptedBreak{
			key: {a},
		}),
		AcceptedBreaksV2: config.NewStore(map[config.GroupNameVersion][]config.JustifiedBreak{
			key: {{Justification: "reviewed", Break: b}},
		}),
	})

	expected := config.NewSet(
		config.JustifiedBreak{Justification: config.DefaultMigrationJustification, Break: a},
		config.JustifiedBreak{Justification: "reviewed", Break: b},
	)
	assert.True(t, doc.AcceptedBreaksFor(key).Equal(expected))
}

func TestDocumentWithOnlyNativeBreaksReportsThem(t *testing.T) {
	key := testutil.GNV("g:n:1")
	store := config.NewStore(map[config.GroupNameVersion][]config.JustifiedBreak{
		key: {{Justification: "ok", Break: testutil.Removed("class A")}},
	})
	doc := config.New(config.Fields{AcceptedBreaksV2: store})

	assert.True(t, doc.AcceptedBreaksV2().Equal(store))
	assert.True(t, doc.NativeAcceptedBreaks().Equal(store))
}

func TestAddVersionOverrideReturnsNewDocument(t *testing.T) {
	key := testutil.GNV("g:n:1")
	original := config.Empty()
	updated := original.AddVersionOverride(key, "1.0.1").AddVersionOverride(key, "1.0.2")

	_, ok := original.VersionOverrideFor(key)
	assert.False(t, ok)
	got, ok := updated.VersionOverrideFor(key)
	require.True(t, ok)
	assert.Equal(t, "1.0.2", got)
}

func TestAddAcceptedBreaksReturnsNewDocument(t *testing.T) {
	key := testutil.GNV("g:n:1")
	a := testutil.Removed("class A")
	original := config.Empty().AddVersionOverride(key, "2.0")

	updated := original.AddAcceptedBreaks(key, "because", []config.AcceptedBreak{a})

	assert.True(t, original.AcceptedBreaksFor(key).IsEmpty())
	assert.True(t, updated.AcceptedBreaksFor(key).Contains(config.JustifiedBreak{Justification: "because", Break: a}))
	got, ok := updated.VersionOverrideFor(key)
	require.True(t, ok, "overrides carry over")
	assert.Equal(t, "2.0", got)
}

func TestAddAcceptedBreaksOnDocumentIsIdempotent(t *testing.T) {
	key := testutil.GNV("g:n:1")
	breaks := []config.AcceptedBreak{testutil.Removed("class A")}

	once := config.Empty().AddAcceptedBreaks(key, "why", breaks)
	twice := once.AddAcceptedBreaks(key, "why", breaks)
	assert.True(t, once.Equal(twice))
}

func TestDerivedDocumentDropsLegacyInput(t *testing.T) {
	key := testutil.GNV("g:n:1")
	a := testutil.Removed("class A")
	doc := config.New(config.Fields{
		LegacyAcceptedBreaks: config.NewLegacyAcceptedBreaks(map[config.GroupNameVersion][]config.AcceptedBreak{
			key: {a},
		}),
	})

	derived := doc.AddVersionOverride(key, "1.1")

	assert.Equal(t, 0, derived.LegacyAcceptedBreaks().Len())
	assert.True(t, derived.AcceptedBreaksV2().Equal(doc.AcceptedBreaksV2()))
	assert.True(t, derived.NativeAcceptedBreaks().Equal(doc.AcceptedBreaksV2()))
}

func TestDocumentEqualIgnoresInputSplit(t *testing.T) {
	key := testutil.GNV("g:n:1")
	a := testutil.Removed("class A")

	fromLegacy := config.New(config.Fields{
		LegacyAcceptedBreaks: config.NewLegacyAcceptedBreaks(map[config.GroupNameVersion][]config.AcceptedBreak{
			key: {a},
		}),
	})
	fromNative := config.New(config.Fields{
		AcceptedBreaksV2: config.NewStore(map[config.GroupNameVersion][]config.JustifiedBreak{
			key: {{Justification: config.DefaultMigrationJustification, Break: a}},
		}),
	})

	assert.True(t, fromLegacy.Equal(fromNative))
	assert.False(t, fromLegacy.Equal(fromNative.AddVersionOverride(key, "x")))
}

func TestDocumentConcurrentReads(t *testing.T) {
	key := testutil.GNV("g:n:1")
	doc := config.Empty().
		AddVersionOverride(key, "1.0").
		AddAcceptedBreaks(key, "why", []config.AcceptedBreak{testutil.Removed("class A")})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = doc.VersionOverrideFor(key)
				_ = doc.AcceptedBreaks(key.GroupAndName()).Items()
				_ = doc.AcceptedBreaksFor(key).Len()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, doc.AcceptedBreaksFor(key).Len())
}
