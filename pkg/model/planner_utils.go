package model

import (
	"fmt"
	"slices"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/sat"
)

type unsatisfiableError struct {
	semester int
}

func (err unsatisfiableError) Error() string {
	return fmt.Sprintf("credit bounds of semester %v cannot be met by any course", err.semester)
}

func verify(solution Solution, problem Problem) bool {
	if !solution.Found() || len(solution.Assignment) != len(problem.Courses) {
		return false
	}

	credits := make([]int, problem.Semesters+1)
	for _, course := range problem.Courses {
		semester, ok := solution.Assignment[course.Id]
		// Check that:
		// - Course is assigned exactly once to an existing semester
		// - Course is offered in the semester's term
		// - Every transitive prerequisite is assigned strictly earlier
		if !ok || semester < 1 || semester > problem.Semesters ||
			!offeringAllows(course.Offering, TermOf(semester, problem.Start)) {
			return false
		}
		for _, prerequisite := range problem.Prerequisites[course.Id] {
			if prerequisiteSemester, ok := solution.Assignment[prerequisite]; !ok || prerequisiteSemester >= semester {
				return false
			}
		}
		credits[semester] += course.CreditHours
	}

	// Check credit bounds for every semester, empty ones included
	for semester := 1; semester <= problem.Semesters; semester++ {
		if credits[semester] < problem.MinCredits || credits[semester] > problem.MaxCredits {
			return false
		}
	}
	return true
}

// orderCourses stable-sorts courses by ascending transitive prerequisite count
func orderCourses(problem Problem) []catalog.Course {
	courses := slices.Clone(problem.Courses)
	slices.SortStableFunc(courses, func(a, b catalog.Course) int {
		return len(problem.Prerequisites[a.Id]) - len(problem.Prerequisites[b.Id])
	})
	return courses
}

func buildSat(variables uint64, constraints []func(state constraintState) [][]int64, state constraintState) sat.SAT {
	satInstance := sat.SAT{
		Variables: variables,
		Clauses:   [][]int64{},
	}

	type generated struct {
		family  int
		clauses [][]int64
	}
	constraintsChannel := make(chan generated) // Channel to collect constraints

	// Execute constraints functions on different goroutines to improve performance
	for family, constraint := range constraints {
		go func() {
			constraintsChannel <- generated{family: family, clauses: constraint(state)}
		}()
	}

	// Collect generated constraints, appended in family order so instances are reproducible
	families := make([][][]int64, len(constraints))
	for range constraints {
		result := <-constraintsChannel
		families[result.family] = result.clauses
	}
	for _, clauses := range families {
		satInstance.Clauses = append(satInstance.Clauses, clauses...)
	}

	return satInstance
}
