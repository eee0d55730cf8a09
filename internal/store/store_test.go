package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnuddindev/secondbrain/internal/store"
)

type tagged struct {
	tags []string
}

func tagsOf(t tagged) []string { return t.tags }

func TestGroupItemsCountsPerTag(t *testing.T) {
	items := []tagged{
		{tags: []string{"go", "web"}},
		{tags: []string{"go"}},
	}

	groups := store.GroupItems(items, tagsOf)

	assert.Equal(t, []store.Grouped{
		{Key: "go", Count: 2},
		{Key: "web", Count: 1},
	}, groups)
}

func TestGroupItemsUntaggedBucket(t *testing.T) {
	items := []tagged{
		{tags: nil},
		{tags: []string{}},
		{tags: []string{"go"}},
	}

	groups := store.GroupItems(items, tagsOf)

	assert.Equal(t, []store.Grouped{
		{Key: store.Untagged, Count: 2},
		{Key: "go", Count: 1},
	}, groups)
}

func TestGroupItemsPreservesFirstSeenOrder(t *testing.T) {
	items := []tagged{
		{tags: []string{"zeta"}},
		{tags: []string{"alpha"}},
		{tags: []string{"mid"}},
	}

	groups := store.GroupItems(items, tagsOf)

	assert.Equal(t, "zeta", groups[0].Key)
	assert.Equal(t, "alpha", groups[1].Key)
	assert.Equal(t, "mid", groups[2].Key)
}

func TestGroupItemsEmptyInput(t *testing.T) {
	groups := store.GroupItems(nil, tagsOf)
	assert.Empty(t, groups)
}
