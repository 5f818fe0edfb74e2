package model

import (
	"testing"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func newCourse(t *testing.T, id string, credits int, offering catalog.Offering, prerequisites string, designations ...string) catalog.Course {
	t.Helper()
	course, err := catalog.NewCourse(id, id, credits, offering, prerequisites, designations, "Atlanta")
	require.Nil(t, err)
	return course
}

func newCatalog(t *testing.T, courses []catalog.Course, majors ...catalog.MajorRequirement) *catalog.Memory {
	t.Helper()
	memory, err := catalog.NewMemory(courses, majors, nil)
	require.Nil(t, err)
	return memory
}

func newMajor(t *testing.T, name string, required string, electives ...string) catalog.MajorRequirement {
	t.Helper()
	groups := make([][]catalog.CourseRef, 0, len(electives))
	for _, elective := range electives {
		groups = append(groups, catalog.ParseCourseRefs(elective))
	}
	major, err := catalog.NewMajorRequirement(name, catalog.ParseCourseRefs(required), groups)
	require.Nil(t, err)
	return major
}

// newProblem derives the closure of the given courses, ignoring prerequisites outside the list
func newProblem(courses []catalog.Course, semesters, minCredits, maxCredits int, start Term) Problem {
	set := newWorkingSet()
	for _, course := range courses {
		set.add(course)
	}
	return Problem{
		Courses:       set.list(),
		Prerequisites: transitiveClosure(set.order, directPrerequisites(set)),
		Semesters:     semesters,
		MinCredits:    minCredits,
		MaxCredits:    maxCredits,
		Start:         start,
	}
}

func copySemesters(semesters []SemesterSchedule) [][]string {
	ids := make([][]string, len(semesters))
	for i, semester := range semesters {
		ids[i] = semester.CourseIds()
	}
	return ids
}
