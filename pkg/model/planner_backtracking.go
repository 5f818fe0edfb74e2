package model

import (
	"context"

	"github.com/limaJavier/degreeplan/pkg/catalog"
)

// DefaultMaxNodes bounds the slot evaluations of a backtracking search
const DefaultMaxNodes = 2_000_000

// contextCheckInterval is the number of slot evaluations between context polls
const contextCheckInterval = 1024

type backtrackingPlanner struct {
	maxNodes int
}

// NewBacktrackingPlanner returns a depth-first planner that tries earlier semesters first.
// A non-positive maxNodes selects DefaultMaxNodes
func NewBacktrackingPlanner(maxNodes int) Planner {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &backtrackingPlanner{maxNodes: maxNodes}
}

func (planner *backtrackingPlanner) Build(ctx context.Context, problem Problem) (Solution, error) {
	if err := problem.Validate(); err != nil {
		return Solution{}, err
	}

	courses := orderCourses(problem)
	n := len(courses)

	slots := make([]int, n)                     // Semester of the course at each depth, 0 when unplaced
	next := make([]int, n+1)                    // Next semester to try at each depth
	credits := make([]int, problem.Semesters+1) // Credit load per semester, index 0 unused
	placed := make(map[string]int, n)           // Course id to semester
	terms := make([]Term, problem.Semesters+1)  // Term label per semester
	for semester := 1; semester <= problem.Semesters; semester++ {
		terms[semester] = TermOf(semester, problem.Start)
	}

	feasible := func(course catalog.Course, semester int) bool {
		if credits[semester]+course.CreditHours > problem.MaxCredits || !offeringAllows(course.Offering, terms[semester]) {
			return false
		}
		for _, prerequisite := range problem.Prerequisites[course.Id] {
			if slot, ok := placed[prerequisite]; !ok || slot >= semester {
				return false
			}
		}
		return true
	}

	unplace := func(depth int) {
		course := courses[depth]
		credits[slots[depth]] -= course.CreditHours
		delete(placed, course.Id)
		slots[depth] = 0
	}

	minimumMet := func() bool {
		for semester := 1; semester <= problem.Semesters; semester++ {
			if credits[semester] < problem.MinCredits {
				return false
			}
		}
		return true
	}

	nodes := 0
	depth := 0
	next[0] = 1
	for {
		if depth == n {
			if minimumMet() {
				assignment := make(map[string]int, n)
				for id, semester := range placed {
					assignment[id] = semester
				}
				return Solution{Assignment: assignment, NodesExpanded: nodes}, nil
			} else if n == 0 {
				return Solution{NodesExpanded: nodes}, nil
			}
			depth--
			unplace(depth)
			continue
		}

		course := courses[depth]
		advanced := false
		for semester := next[depth]; semester <= problem.Semesters; semester++ {
			nodes++
			if nodes > planner.maxNodes || (nodes%contextCheckInterval == 0 && ctx.Err() != nil) {
				return Solution{NodesExpanded: nodes, Exhausted: true}, nil
			}

			if feasible(course, semester) {
				slots[depth] = semester
				credits[semester] += course.CreditHours
				placed[course.Id] = semester
				next[depth] = semester + 1
				depth++
				next[depth] = 1
				advanced = true
				break
			}
		}

		if !advanced {
			if depth == 0 {
				return Solution{NodesExpanded: nodes}, nil // Every branch was refuted
			}
			depth--
			unplace(depth)
		}
	}
}

func (planner *backtrackingPlanner) Verify(solution Solution, problem Problem) bool {
	return verify(solution, problem)
}
