package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/limaJavier/degreeplan/pkg/catalog"
)

var ErrInvalidProblem = errors.New("invalid planning problem")

// Problem is the input of the semester-assignment search
type Problem struct {
	Courses       []catalog.Course    // Working set in insertion order
	Prerequisites map[string][]string // Transitive prerequisites of each course, restricted to the working set
	Semesters     int
	MinCredits    int
	MaxCredits    int
	Start         Term
}

// Solution maps every course of the problem to a 1-indexed semester. A nil Assignment means no schedule was found
type Solution struct {
	Assignment    map[string]int
	NodesExpanded int  // Slot evaluations for backtracking, solver invocations for SAT
	Exhausted     bool // The search stopped on its node bound or on the context before deciding
}

func (solution Solution) Found() bool {
	return solution.Assignment != nil
}

type Planner interface {
	Build(ctx context.Context, problem Problem) (Solution, error)
	Verify(solution Solution, problem Problem) bool
}

func (problem Problem) Validate() error {
	if problem.Semesters < 1 {
		return fmt.Errorf("%w: semester count must be positive: %v", ErrInvalidProblem, problem.Semesters)
	} else if problem.MinCredits < 0 || problem.MaxCredits < 0 {
		return fmt.Errorf("%w: credit bounds must not be negative", ErrInvalidProblem)
	} else if problem.MinCredits > problem.MaxCredits {
		return fmt.Errorf("%w: minimum credits %v exceed maximum credits %v", ErrInvalidProblem, problem.MinCredits, problem.MaxCredits)
	}

	ids := make(map[string]bool, len(problem.Courses))
	for _, course := range problem.Courses {
		if ids[course.Id] {
			return fmt.Errorf("%w: duplicate course %q", ErrInvalidProblem, course.Id)
		}
		ids[course.Id] = true
	}

	for course, prerequisites := range problem.Prerequisites {
		for _, prerequisite := range prerequisites {
			if !ids[prerequisite] {
				return fmt.Errorf("%w: prerequisite %q of %q is not part of the problem", ErrInvalidProblem, prerequisite, course)
			}
		}
	}
	return nil
}
