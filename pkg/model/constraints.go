package model

import "github.com/limaJavier/degreeplan/pkg/catalog"

type constraintState struct {
	indexer       indexer
	courses       []catalog.Course
	position      map[string]uint64 // Course id to its index in courses
	prerequisites map[string][]string
	terms         []Term // Term label of each 0-indexed semester
	maxCredits    int

	semesters uint64
}

func (state constraintState) literal(course, semester uint64) int64 {
	return int64(state.indexer.Index(course, semester))
}

// Every course takes place in at least one semester
func completenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0, len(state.courses))
	for course := range uint64(len(state.courses)) {
		clause := make([]int64, 0, state.semesters)
		for semester := range state.semesters {
			clause = append(clause, state.literal(course, semester))
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// Every course takes place in at most one semester
func uniquenessConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for course := range uint64(len(state.courses)) {
		for semester1 := range state.semesters {
			for semester2 := semester1 + 1; semester2 < state.semesters; semester2++ {
				clauses = append(clauses, []int64{-state.literal(course, semester1), -state.literal(course, semester2)})
			}
		}
	}
	return clauses
}

// A course never lands in a term it is not offered in, nor in any semester when it alone exceeds the credit ceiling
func offeringConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for course, record := range state.courses {
		for semester := range state.semesters {
			if record.CreditHours > state.maxCredits || !offeringAllows(record.Offering, state.terms[semester]) {
				clauses = append(clauses, []int64{-state.literal(uint64(course), semester)})
			}
		}
	}
	return clauses
}

// A course in semester s implies each of its transitive prerequisites in some semester before s
func prerequisiteConstraints(state constraintState) [][]int64 {
	clauses := make([][]int64, 0)
	for course, record := range state.courses {
		for _, prerequisite := range state.prerequisites[record.Id] {
			prerequisiteCourse := state.position[prerequisite]
			for semester := range state.semesters {
				clause := make([]int64, 0, semester+1)
				clause = append(clause, -state.literal(uint64(course), semester))
				for earlier := range semester {
					clause = append(clause, state.literal(prerequisiteCourse, earlier))
				}
				clauses = append(clauses, clause)
			}
		}
	}
	return clauses
}
