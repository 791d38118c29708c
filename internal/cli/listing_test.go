package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjellheim/treedu/internal/scan"
)

func TestSortListingDirsBeforeFiles(t *testing.T) {
	entries := []scan.Entry{
		{Path: "/r/a.txt", Name: "a.txt", Kind: scan.KindFile, Size: 100},
		{Path: "/r/sub", Name: "sub", Kind: scan.KindDir, Size: 50},
	}

	sortListing(entries)

	// A directory precedes a file regardless of size.
	assert.Equal(t, "sub", entries[0].Name)
	assert.Equal(t, "a.txt", entries[1].Name)
}

func TestSortListingSizeThenName(t *testing.T) {
	entries := []scan.Entry{
		{Path: "/r/small", Name: "small", Kind: scan.KindFile, Size: 1},
		{Path: "/r/bb", Name: "bb", Kind: scan.KindFile, Size: 10},
		{Path: "/r/aa", Name: "aa", Kind: scan.KindFile, Size: 10},
		{Path: "/r/big", Name: "big", Kind: scan.KindFile, Size: 100},
	}

	sortListing(entries)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	assert.Equal(t, []string{"big", "aa", "bb", "small"}, names)
}

func TestBuildListingFiltersAndTrims(t *testing.T) {
	entries := []scan.Entry{
		{Path: "/r/tiny", Name: "tiny", Kind: scan.KindFile, Size: 5},
		{Path: "/r/mid", Name: "mid", Kind: scan.KindFile, Size: 500},
		{Path: "/r/big", Name: "big", Kind: scan.KindFile, Size: 5000},
		{Path: "/r/huge", Name: "huge", Kind: scan.KindFile, Size: 50000},
	}

	listing := buildListing(entries, 100, 2)
	require.Len(t, listing, 2)

	assert.Equal(t, "huge", listing[0].Name)
	assert.Equal(t, "big", listing[1].Name)

	// Input order is untouched.
	assert.Equal(t, "tiny", entries[0].Name)
}

func TestBuildListingKeepsAllByDefault(t *testing.T) {
	entries := []scan.Entry{
		{Path: "/r/a", Name: "a", Kind: scan.KindFile, Size: 1},
		{Path: "/r/b", Name: "b", Kind: scan.KindFile, Size: 2},
	}

	listing := buildListing(entries, 0, 0)
	assert.Len(t, listing, 2)
}
