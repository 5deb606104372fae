package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryType(t *testing.T) {
	for _, ct := range CategoryTypes {
		assert.Equal(t, ct, ParseCategoryType(string(ct)))
	}
	assert.Equal(t, CategoryForum, ParseCategoryType(""))
	assert.Equal(t, CategoryForum, ParseCategoryType("blog"))
}

func TestCategoryLayout(t *testing.T) {
	assert.Equal(t, CategoryForum, Category{Id: "c1"}.Layout())
	assert.Equal(t, CategoryStory, Category{Type: "story"}.Layout())
	assert.Equal(t, CategoryForum, Category{Type: "unknown"}.Layout())
}

func TestFindCategory(t *testing.T) {
	c, ok := FindCategory("jobs")
	require.True(t, ok)
	assert.Equal(t, CategoryJob, c.Type)

	_, ok = FindCategory("nope")
	assert.False(t, ok)

	assert.Equal(t, "roadmap", CategoryOfType(CategoryRoadmap).Id)
	assert.Equal(t, "c1", CategoryOfType(CategoryForum).Id)
}

func TestCanonicalTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	stored := time.Date(2024, 4, 30, 23, 59, 59, 123456789, time.FixedZone("IST", 5*3600+1800))

	assert.Equal(t, "2024-04-30T18:29:59.123Z", CanonicalTimestamp(&stored, now))
	assert.Equal(t, "2024-05-01T10:00:00.000Z", CanonicalTimestamp(nil, now))

	parsed, err := ParseTimestamp(CanonicalTimestamp(&stored, now))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(stored.Truncate(time.Millisecond)))
}

func TestThreadOwnedBy(t *testing.T) {
	th := Thread{AuthorId: "u1"}
	assert.True(t, th.OwnedBy("u1"))
	assert.False(t, th.OwnedBy("u2"))
	assert.False(t, (&Thread{}).OwnedBy(""))
}
