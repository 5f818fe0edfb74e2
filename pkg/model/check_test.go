package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(term string, year int, classes ...CourseRecord) SemesterRecord {
	total := 0
	for _, class := range classes {
		total += class.CreditHours
	}
	return SemesterRecord{Year: year, Semester: term, Classes: classes, TotalCreditHours: total}
}

func class(id string, credits int, recurring, prerequisites string) CourseRecord {
	return CourseRecord{Id: id, Name: id, CreditHours: credits, Recurring: recurring, Prerequisites: prerequisites, RequirementDesignation: []string{}}
}

func TestCheckRecords(t *testing.T) {
	t.Run("Valid plan", func(t *testing.T) {
		records := []SemesterRecord{
			record("Fall", 2024, class("MATH111", 3, "", "")),
			record("Spring", 2025, class("CS170", 4, "fall/spring", "MATH111 or MATH112; CS100")),
		}

		violations := CheckRecords(records, []string{"CS100"}, 12)

		assert.Empty(t, violations)
	})

	t.Run("Prerequisite in the same semester", func(t *testing.T) {
		records := []SemesterRecord{
			record("Fall", 2024, class("MATH111", 3, "", ""), class("CS170", 4, "", "MATH111")),
		}

		violations := CheckRecords(records, nil, 12)

		assert.Equal(t, []Violation{{Semester: 1, Course: "CS170", Message: "prerequisite [MATH111] is not completed before this semester"}}, violations)
	})

	t.Run("Prerequisite absent from the plan is waived", func(t *testing.T) {
		records := []SemesterRecord{record("Fall", 2024, class("CS170", 4, "", "MATH999"))}

		assert.Empty(t, CheckRecords(records, nil, 12))
	})

	t.Run("Offering, duplicates and credits", func(t *testing.T) {
		records := []SemesterRecord{
			record("Fall", 2024, class("CS171", 4, "spring", ""), class("CS334", 3, "", ""), class("CS326", 3, "", "")),
			record("Spring", 2025, class("CS334", 3, "", ""), class("ENG101", 3, "", "")),
		}
		records[1].TotalCreditHours = 7

		violations := CheckRecords(records, []string{"ENG101"}, 9)

		assert.Equal(t, []Violation{
			{Semester: 1, Course: "CS171", Message: "offered spring only, scheduled in Fall"},
			{Semester: 1, Message: "10 credit hours exceed the maximum of 9"},
			{Semester: 2, Course: "CS334", Message: "scheduled more than once"},
			{Semester: 2, Course: "ENG101", Message: "already taken"},
			{Semester: 2, Message: "total of 7 credit hours does not match the classes, which add up to 6"},
		}, violations)
	})

	t.Run("Unknown labels", func(t *testing.T) {
		records := []SemesterRecord{record("Summer", 2025, class("CS170", 4, "winter", ""))}

		violations := CheckRecords(records, nil, 12)

		assert.Equal(t, []Violation{
			{Semester: 1, Message: `unknown term "Summer": expected Fall or Spring`},
			{Semester: 1, Course: "CS170", Message: `unknown recurring offering "winter"`},
		}, violations)
	})
}
