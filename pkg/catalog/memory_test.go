package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCourse(t *testing.T, id string, credits int, designations ...string) Course {
	t.Helper()
	course, err := NewCourse(id, id, credits, OfferingAny, "", designations, "")
	require.Nil(t, err)
	return course
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	memory, err := NewMemory([]Course{
		mustCourse(t, "CS170", 4),
		mustCourse(t, "CS253", 3),
		mustCourse(t, "CS334", 3),
		mustCourse(t, "ITAL101", 4, "Intercultural Communication"),
		mustCourse(t, "SPAN101", 4, "Intercultural Communication"),
	}, nil, nil)
	require.Nil(t, err)

	t.Run("Missing course wraps ErrNotFound", func(t *testing.T) {
		_, err := memory.FetchCourse(ctx, "CS999")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Missing major wraps ErrNotFound", func(t *testing.T) {
		_, err := memory.FetchMajorRequirements(ctx, "Underwater Basket Weaving")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Tag query with subject filter", func(t *testing.T) {
		courses, err := memory.CoursesByRequirementTag(ctx, "intercultural", "ITAL")
		assert.Nil(t, err)
		assert.Equal(t, []string{"ITAL101"}, lo.Map(courses, func(course Course, _ int) string { return course.Id }))

		courses, err = memory.CoursesByRequirementTag(ctx, "Intercultural Communication", "")
		assert.Nil(t, err)
		assert.Len(t, courses, 2)
	})

	t.Run("Wildcard expansion", func(t *testing.T) {
		ids, err := ExpandWildcard(ctx, memory, "CS200*")
		assert.Nil(t, err)
		assert.Equal(t, []string{"CS253", "CS334"}, ids)

		ids, err = ExpandWildcard(ctx, memory, "PHYS100*")
		assert.Nil(t, err)
		assert.Equal(t, []string{"PHYS100*"}, ids)

		ids, err = ExpandWildcard(ctx, memory, "CS170")
		assert.Nil(t, err)
		assert.Equal(t, []string{"CS170"}, ids)
	})
}

type countingAccessor struct {
	*Memory
	fetches int
}

func (accessor *countingAccessor) FetchCourse(ctx context.Context, id string) (Course, error) {
	accessor.fetches++
	return accessor.Memory.FetchCourse(ctx, id)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	memory, err := NewMemory([]Course{mustCourse(t, "CS170", 4)}, nil, nil)
	require.Nil(t, err)
	accessor := &countingAccessor{Memory: memory}
	cache := NewCache(accessor)

	//** Act
	for range 3 {
		_, err := cache.FetchCourse(ctx, "CS170")
		assert.Nil(t, err)
		_, err = cache.FetchCourse(ctx, "CS999")
		assert.True(t, errors.Is(err, ErrNotFound))
	}

	//** Assert
	assert.Equal(t, 2, accessor.fetches)
	assert.Equal(t, 2, cache.Lookups)

	courses, err := cache.CoursesBySubject(ctx, "CS")
	assert.Nil(t, err)
	assert.Len(t, courses, 1)
}
