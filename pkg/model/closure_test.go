package model

import (
	"context"
	"testing"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitiveClosure(t *testing.T) {
	t.Run("Chain", func(t *testing.T) {
		closure := transitiveClosure(
			[]string{"A", "B", "C"},
			map[string][]string{"B": {"A"}, "C": {"B"}},
		)
		assert.Empty(t, closure["A"])
		assert.Equal(t, []string{"A"}, closure["B"])
		assert.Equal(t, []string{"A", "B"}, closure["C"])
	})

	t.Run("Cycle terminates", func(t *testing.T) {
		//** Act
		closure := transitiveClosure(
			[]string{"A", "B"},
			map[string][]string{"A": {"B"}, "B": {"A"}},
		)

		//** Assert
		assert.Equal(t, []string{"B"}, closure["A"])
		assert.Equal(t, []string{"A"}, closure["B"])
	})

	t.Run("Diamond", func(t *testing.T) {
		closure := transitiveClosure(
			[]string{"A", "B", "C", "D"},
			map[string][]string{"B": {"A"}, "C": {"A"}, "D": {"B", "C"}},
		)
		assert.Equal(t, []string{"A", "B", "C"}, closure["D"])
	})
}

func TestBuildWorkingSet(t *testing.T) {
	ctx := context.Background()
	memory := newCatalog(t, []catalog.Course{
		newCourse(t, "CS171", 4, catalog.OfferingAny, "CS170; MATH111 or MATH112"),
		newCourse(t, "CS170", 4, catalog.OfferingAny, "MATH111"),
		newCourse(t, "MATH112", 4, catalog.OfferingAny, ""),
	})
	cs171, err := memory.FetchCourse(ctx, "CS171")
	require.Nil(t, err)

	t.Run("Missing alternatives fall back and unresolvable groups are waived", func(t *testing.T) {
		//** Arrange
		warnings := make([]Warning, 0)

		//** Act
		set, err := buildWorkingSet(ctx, memory, []catalog.Course{cs171}, map[string]bool{}, func(warning Warning) {
			warnings = append(warnings, warning)
		})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, []string{"CS171", "CS170", "MATH112"}, set.order)
		assert.Len(t, warnings, 3)
		assert.True(t, lo.EveryBy(warnings, func(warning Warning) bool { return warning.Kind == WarningNotFound }))

		direct := directPrerequisites(set)
		assert.Equal(t, []string{"CS170", "MATH112"}, direct["CS171"])
		assert.Empty(t, direct["CS170"])
	})

	t.Run("Taken courses satisfy groups", func(t *testing.T) {
		set, err := buildWorkingSet(ctx, memory, []catalog.Course{cs171}, map[string]bool{"CS170": true}, func(Warning) {})

		require.Nil(t, err)
		assert.Equal(t, []string{"CS171", "MATH112"}, set.order)
	})

	t.Run("Duplicate seeds are kept once", func(t *testing.T) {
		set, err := buildWorkingSet(ctx, memory, []catalog.Course{cs171, cs171}, map[string]bool{"CS170": true, "MATH112": true}, func(Warning) {})

		require.Nil(t, err)
		assert.Equal(t, []string{"CS171"}, set.order)
	})
}
