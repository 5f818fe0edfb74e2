package model

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planners() map[string]Planner {
	return map[string]Planner{
		"Backtracking": NewBacktrackingPlanner(0),
		"SAT-based":    NewSatPlanner(sat.NewGophersatSolver(), 0),
	}
}

func TestPlanners(t *testing.T) {
	for name, planner := range planners() {
		t.Run(name, func(t *testing.T) {
			plannerScenarios(t, planner)
		})
	}
}

func plannerScenarios(t *testing.T, planner Planner) {
	ctx := context.Background()

	t.Run("Prerequisite chain respects ordering and offerings", func(t *testing.T) {
		//** Arrange
		problem := newProblem([]catalog.Course{
			newCourse(t, "CS253", 4, catalog.OfferingFall, "CS171"),
			newCourse(t, "CS171", 4, catalog.OfferingSpring, "CS170"),
			newCourse(t, "CS170", 4, catalog.OfferingFallSpring, "MATH111"),
			newCourse(t, "MATH111", 4, catalog.OfferingFallSpring, ""),
		}, 8, 0, 19, Fall)

		//** Act
		solution, err := planner.Build(ctx, problem)

		//** Assert
		require.Nil(t, err)
		require.True(t, solution.Found())
		assert.True(t, planner.Verify(solution, problem))
		assert.Less(t, solution.Assignment["MATH111"], solution.Assignment["CS170"])
		assert.Less(t, solution.Assignment["CS170"], solution.Assignment["CS171"])
		assert.Less(t, solution.Assignment["CS171"], solution.Assignment["CS253"])
		assert.Equal(t, Spring, TermOf(solution.Assignment["CS171"], Fall))
		assert.Equal(t, Fall, TermOf(solution.Assignment["CS253"], Fall))
	})

	t.Run("Fall-only course in a single Spring semester", func(t *testing.T) {
		problem := newProblem([]catalog.Course{
			newCourse(t, "CS253", 3, catalog.OfferingFall, ""),
		}, 1, 0, 19, Spring)

		solution, err := planner.Build(ctx, problem)

		assert.Nil(t, err)
		assert.False(t, solution.Found())
		assert.False(t, solution.Exhausted)
	})

	t.Run("Credit bounds", func(t *testing.T) {
		problem := newProblem([]catalog.Course{
			newCourse(t, "A", 4, catalog.OfferingAny, ""),
			newCourse(t, "B", 4, catalog.OfferingAny, ""),
			newCourse(t, "C", 4, catalog.OfferingAny, ""),
		}, 2, 4, 8, Fall)

		solution, err := planner.Build(ctx, problem)

		require.Nil(t, err)
		require.True(t, solution.Found())
		assert.True(t, planner.Verify(solution, problem))
		assert.Len(t, solution.Assignment, 3)
	})

	t.Run("Unreachable minimum", func(t *testing.T) {
		problem := newProblem([]catalog.Course{
			newCourse(t, "A", 3, catalog.OfferingAny, ""),
		}, 2, 3, 19, Fall)

		solution, err := planner.Build(ctx, problem)

		assert.Nil(t, err)
		assert.False(t, solution.Found())
	})

	t.Run("Prerequisite cycle is infeasible", func(t *testing.T) {
		problem := newProblem([]catalog.Course{
			newCourse(t, "A", 3, catalog.OfferingAny, "B"),
			newCourse(t, "B", 3, catalog.OfferingAny, "A"),
		}, 4, 0, 19, Fall)

		solution, err := planner.Build(ctx, problem)

		assert.Nil(t, err)
		assert.False(t, solution.Found())
	})

	t.Run("Empty problem", func(t *testing.T) {
		solution, err := planner.Build(ctx, newProblem(nil, 2, 0, 19, Fall))

		assert.Nil(t, err)
		assert.True(t, solution.Found())
		assert.Empty(t, solution.Assignment)
	})

	t.Run("Invalid problem", func(t *testing.T) {
		_, err := planner.Build(ctx, newProblem(nil, 2, 12, 6, Fall))
		assert.True(t, errors.Is(err, ErrInvalidProblem))

		_, err = planner.Build(ctx, newProblem(nil, 0, 0, 6, Fall))
		assert.True(t, errors.Is(err, ErrInvalidProblem))
	})
}

func TestBacktrackingFirstFit(t *testing.T) {
	//** Arrange
	problem := newProblem([]catalog.Course{
		newCourse(t, "CS253", 4, catalog.OfferingFall, "CS171"),
		newCourse(t, "CS171", 4, catalog.OfferingSpring, "CS170"),
		newCourse(t, "CS170", 4, catalog.OfferingAny, "MATH111"),
		newCourse(t, "MATH111", 4, catalog.OfferingAny, ""),
	}, 8, 0, 19, Fall)

	//** Act
	solution, err := NewBacktrackingPlanner(0).Build(context.Background(), problem)

	//** Assert
	require.Nil(t, err)
	assert.Equal(t, map[string]int{"MATH111": 1, "CS170": 2, "CS171": 4, "CS253": 5}, solution.Assignment)
}

func TestBacktrackingBounds(t *testing.T) {
	// Thirty credits never fit into three semesters of nine
	courses := make([]catalog.Course, 0, 10)
	for i := range 10 {
		courses = append(courses, newCourse(t, fmt.Sprintf("C%v", i), 3, catalog.OfferingAny, ""))
	}
	problem := newProblem(courses, 3, 0, 9, Fall)

	t.Run("Node limit", func(t *testing.T) {
		solution, err := NewBacktrackingPlanner(50).Build(context.Background(), problem)

		assert.Nil(t, err)
		assert.False(t, solution.Found())
		assert.True(t, solution.Exhausted)
		assert.Equal(t, 51, solution.NodesExpanded)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		solution, err := NewBacktrackingPlanner(0).Build(ctx, problem)

		assert.Nil(t, err)
		assert.False(t, solution.Found())
		assert.True(t, solution.Exhausted)
	})
}

func TestVerify(t *testing.T) {
	problem := newProblem([]catalog.Course{
		newCourse(t, "MATH111", 3, catalog.OfferingAny, ""),
		newCourse(t, "CS170", 3, catalog.OfferingFall, "MATH111"),
	}, 3, 0, 10, Fall)

	assert.True(t, verify(Solution{Assignment: map[string]int{"MATH111": 1, "CS170": 3}}, problem))
	assert.False(t, verify(Solution{Assignment: map[string]int{"MATH111": 1, "CS170": 1}}, problem), "same semester")
	assert.False(t, verify(Solution{Assignment: map[string]int{"MATH111": 1, "CS170": 2}}, problem), "spring slot")
	assert.False(t, verify(Solution{Assignment: map[string]int{"MATH111": 1}}, problem), "missing course")
	assert.False(t, verify(Solution{Assignment: map[string]int{"MATH111": 1, "CS170": 4}}, problem), "out of range")
	assert.False(t, verify(Solution{}, problem), "no assignment")
}

func TestPlannersAgree(t *testing.T) {
	random := rand.New(rand.NewPCG(3, 5))
	offerings := []catalog.Offering{catalog.OfferingAny, catalog.OfferingFall, catalog.OfferingSpring, catalog.OfferingFallSpring}
	backtracking, satBased := NewBacktrackingPlanner(0), NewSatPlanner(sat.NewGophersatSolver(), 0)

	for instance := range 60 {
		//** Arrange
		courses := make([]catalog.Course, 0)
		for i := range random.IntN(5) + 1 {
			prerequisites := make([]string, 0)
			for j := range i {
				if random.Float64() < 0.3 {
					prerequisites = append(prerequisites, fmt.Sprintf("C%v", j))
				}
			}
			courses = append(courses, newCourse(t,
				fmt.Sprintf("C%v", i),
				random.IntN(4)+1,
				offerings[random.IntN(len(offerings))],
				strings.Join(prerequisites, ";"),
			))
		}
		minCredits := random.IntN(4)
		problem := newProblem(courses, random.IntN(3)+1, minCredits, minCredits+random.IntN(6)+1, Term(random.IntN(2)))

		//** Act
		expected, err := backtracking.Build(context.Background(), problem)
		require.Nil(t, err)
		actual, err := satBased.Build(context.Background(), problem)
		require.Nil(t, err)

		//** Assert
		assert.Equal(t, expected.Found(), actual.Found(), "instance %v", instance)
		assert.False(t, actual.Exhausted, "instance %v", instance)
		if actual.Found() {
			assert.True(t, satBased.Verify(actual, problem), "instance %v", instance)
			assert.True(t, backtracking.Verify(expected, problem), "instance %v", instance)
		}
	}
}
