// Package view contains the pure sort/filter/group pipeline applied to a
// board's items before they are handed to a client, plus the reconciler
// that diffs two consecutive views.
package view

import (
	"sort"
	"strings"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortMostVotes SortKey = "most-votes"
)

// ParseSortKey accepts the canonical keys plus the legacy "votes" alias.
// Empty input falls back to newest, the default sort.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "":
		return SortNewest, nil
	case string(SortNewest):
		return SortNewest, nil
	case string(SortOldest):
		return SortOldest, nil
	case string(SortMostVotes), "votes":
		return SortMostVotes, nil
	}
	return "", internal_errors.Validation("unknown sort key: " + s)
}

// Apply filters items by a case-insensitive substring match on content and
// sorts the survivors. The input slice is not modified.
func Apply(items []domain.Item, key SortKey, searchTerm string) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	for _, it := range items {
		if term == "" || strings.Contains(strings.ToLower(it.Content), term) {
			out = append(out, it)
		}
	}

	switch key {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			// missing timestamps sort as epoch 0, i.e. oldest
			return out[i].CreatedAt.UnixNano() < out[j].CreatedAt.UnixNano()
		})
	case SortMostVotes:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Votes != out[j].Votes {
				return out[i].Votes > out[j].Votes
			}
			// ties go to the newer item, never left in arbitrary order
			return out[i].CreatedAt.UnixNano() > out[j].CreatedAt.UnixNano()
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.UnixNano() > out[j].CreatedAt.UnixNano()
		})
	}
	return out
}

// Group partitions an already-sorted slice into the three fixed columns.
// The partition is stable: within each column, the relative order from the
// global sort is preserved. Items with an unknown column are dropped.
func Group(items []domain.Item) map[domain.Column][]domain.Item {
	grouped := make(map[domain.Column][]domain.Item, len(domain.Columns))
	for _, c := range domain.Columns {
		grouped[c] = []domain.Item{}
	}
	for _, it := range items {
		if _, ok := grouped[it.Column]; ok {
			grouped[it.Column] = append(grouped[it.Column], it)
		}
	}
	return grouped
}
