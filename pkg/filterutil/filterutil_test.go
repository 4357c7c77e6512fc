package filterutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedItem struct {
	Name string
}

func names(items []namedItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func TestFilterEmptyQueryReturnsCopy(t *testing.T) {
	items := []namedItem{{"Luxanna"}, {"Ashe"}, {"Zed"}}

	got := Filter("", items, func(i namedItem) string { return i.Name })

	assert.Equal(t, items, got)

	// Mutating the result must not touch the input.
	got[0] = namedItem{"Changed"}
	assert.Equal(t, "Luxanna", items[0].Name)
}

func TestFilterWhitespaceQueryReturnsAll(t *testing.T) {
	items := []namedItem{{"Ashe"}, {"Zed"}}
	got := Filter("   ", items, func(i namedItem) string { return i.Name })
	assert.Equal(t, items, got)
}

func TestFilterSubsequenceMatch(t *testing.T) {
	items := []namedItem{{"Luxanna"}, {"Ashe"}}

	got := Filter("lux", items, func(i namedItem) string { return i.Name })

	assert.Equal(t, []string{"Luxanna"}, names(got))
}

func TestFilterNonContiguousMatch(t *testing.T) {
	items := []namedItem{{"League of Legends"}, {"Ashe"}}
	got := Filter("lol", items, func(i namedItem) string { return i.Name })
	assert.Equal(t, []string{"League of Legends"}, names(got))
}

func TestFilterNoMatch(t *testing.T) {
	items := []namedItem{{"Ashe"}}
	got := Filter("xyz", items, func(i namedItem) string { return i.Name })
	assert.Empty(t, got)
}

func TestFilterCaseInsensitive(t *testing.T) {
	items := []namedItem{{"LUXANNA"}, {"ashe"}}
	got := Filter("LuX", items, func(i namedItem) string { return i.Name })
	assert.Equal(t, []string{"LUXANNA"}, names(got))
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []namedItem{{"Zed"}, {"Azir"}, {"Ezreal"}}
	got := Filter("z", items, func(i namedItem) string { return i.Name })
	assert.Equal(t, []string{"Zed", "Azir", "Ezreal"}, names(got))
}
