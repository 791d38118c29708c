package cli

import (
	"sort"

	"github.com/fjellheim/treedu/internal/scan"
)

// sortListing orders entries for presentation: directories before
// everything else, then size descending, with name and path tie-breaks
// so repeated scans of an unchanged tree print identically.
func sortListing(entries []scan.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if (a.Kind == scan.KindDir) != (b.Kind == scan.KindDir) {
			return a.Kind == scan.KindDir
		}

		if a.Size != b.Size {
			return a.Size > b.Size
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.Path < b.Path
	})
}

// buildListing filters and orders the streamed entries for display.
// Entries smaller than minSize are dropped; top caps the listing length
// when positive. The input slice is not modified.
func buildListing(entries []scan.Entry, minSize int64, top int) []scan.Entry {
	listing := make([]scan.Entry, 0, len(entries))

	for _, e := range entries {
		if e.Size < minSize {
			continue
		}

		listing = append(listing, e)
	}

	sortListing(listing)

	if top > 0 && len(listing) > top {
		listing = listing[:top]
	}

	return listing
}
