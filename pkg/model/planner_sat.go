package model

import (
	"context"
	"errors"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/sat"
	"github.com/samber/lo"
)

// DefaultMaxRefinements bounds the solve-and-refine rounds of the SAT planner
const DefaultMaxRefinements = 500

type satPlanner struct {
	solver         sat.SATSolver
	maxRefinements int
}

// NewSatPlanner encodes placement, offering and ordering constraints as CNF and enforces credit bounds by
// adding a blocking clause for each violated semester until the model is consistent
func NewSatPlanner(solver sat.SATSolver, maxRefinements int) Planner {
	if maxRefinements <= 0 {
		maxRefinements = DefaultMaxRefinements
	}
	return &satPlanner{
		solver:         solver,
		maxRefinements: maxRefinements,
	}
}

func (planner *satPlanner) Build(ctx context.Context, problem Problem) (Solution, error) {
	if err := problem.Validate(); err != nil {
		return Solution{}, err
	}

	courses := orderCourses(problem)
	if len(courses) == 0 {
		// Nothing to encode: the empty plan only fails on a positive minimum
		if problem.MinCredits > 0 {
			return Solution{}, nil
		}
		return Solution{Assignment: map[string]int{}}, nil
	}

	//** Initialize dependencies
	semesters := uint64(problem.Semesters)
	indexer := newIndexer(uint64(len(courses)), semesters)
	state := constraintState{
		indexer:       indexer,
		courses:       courses,
		position:      make(map[string]uint64, len(courses)),
		prerequisites: problem.Prerequisites,
		terms:         make([]Term, semesters),
		maxCredits:    problem.MaxCredits,
		semesters:     semesters,
	}
	for i, course := range courses {
		state.position[course.Id] = uint64(i)
	}
	for semester := range state.terms {
		state.terms[semester] = TermOf(semester+1, problem.Start)
	}

	//** Build SAT instance
	constraints := []func(state constraintState) [][]int64{
		completenessConstraints,
		uniquenessConstraints,
		offeringConstraints,
		prerequisiteConstraints,
	}
	satInstance := buildSat(indexer.Variables(), constraints, state)

	//** Solve and refine
	for round := 1; round <= planner.maxRefinements; round++ {
		if ctx.Err() != nil {
			return Solution{NodesExpanded: round - 1, Exhausted: true}, nil
		}

		solution, err := planner.solver.Solve(ctx, satInstance)
		if ctx.Err() != nil {
			return Solution{NodesExpanded: round, Exhausted: true}, nil
		} else if err != nil {
			return Solution{}, err
		} else if solution == nil { // Return no assignment if the SAT instance is not satisfiable
			return Solution{NodesExpanded: round}, nil
		}

		assignment := decodeAssignment(solution, indexer, courses)
		clauses, err := creditRefinements(assignment, state, problem)
		var unsatisfiable unsatisfiableError
		if errors.As(err, &unsatisfiable) {
			return Solution{NodesExpanded: round}, nil
		} else if len(clauses) == 0 {
			return Solution{Assignment: assignment, NodesExpanded: round}, nil
		}
		satInstance.Clauses = append(satInstance.Clauses, clauses...)
	}

	return Solution{NodesExpanded: planner.maxRefinements, Exhausted: true}, nil
}

func (planner *satPlanner) Verify(solution Solution, problem Problem) bool {
	return verify(solution, problem)
}

func decodeAssignment(solution sat.SATSolution, indexer indexer, courses []catalog.Course) map[string]int {
	assignment := make(map[string]int, len(courses))
	for variable := range solution.Positives() {
		if variable > indexer.Variables() {
			continue // Auxiliary variables introduced by the solver
		}
		course, semester := indexer.Attributes(variable)
		assignment[courses[course].Id] = int(semester) + 1
	}
	return assignment
}

// creditRefinements returns one clause per semester whose load falls outside the credit bounds. An overloaded
// semester can no longer hold all of its courses together, an underloaded one demands another course joins it
func creditRefinements(assignment map[string]int, state constraintState, problem Problem) ([][]int64, error) {
	members := make([][]uint64, state.semesters)
	credits := make([]int, state.semesters)
	for i, course := range state.courses {
		semester := assignment[course.Id] - 1
		members[semester] = append(members[semester], uint64(i))
		credits[semester] += course.CreditHours
	}

	clauses := make([][]int64, 0)
	for semester := range state.semesters {
		switch {
		case credits[semester] > problem.MaxCredits:
			clauses = append(clauses, lo.Map(members[semester], func(course uint64, _ int) int64 {
				return -state.literal(course, semester)
			}))
		case credits[semester] < problem.MinCredits:
			outside := lo.Filter(lo.Range(len(state.courses)), func(course int, _ int) bool {
				return !lo.Contains(members[semester], uint64(course))
			})
			if len(outside) == 0 {
				return nil, unsatisfiableError{semester: int(semester) + 1}
			}
			clauses = append(clauses, lo.Map(outside, func(course int, _ int) int64 {
				return state.literal(uint64(course), semester)
			}))
		}
	}
	return clauses, nil
}
