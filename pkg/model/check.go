package model

import (
	"fmt"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

// Violation is a rule broken by a stored or hand-edited plan. Semester is 1-indexed
type Violation struct {
	Semester int    `json:"semester" yaml:"semester"`
	Course   string `json:"course,omitempty" yaml:"course,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

func (violation Violation) String() string {
	if violation.Course == "" {
		return fmt.Sprintf("semester %v: %v", violation.Semester, violation.Message)
	}
	return fmt.Sprintf("semester %v: %v: %v", violation.Semester, violation.Course, violation.Message)
}

// CheckRecords validates serialized semesters on their own, without a catalog: every course appears once and is not
// already taken, is offered in its term, has each prerequisite group completed in an earlier semester and no
// semester exceeds maxCredits. A prerequisite group none of whose alternatives appear in the plan is treated as
// waived, the same way planning waives prerequisites missing from the catalog
func CheckRecords(records []SemesterRecord, taken []string, maxCredits int) []Violation {
	violations := make([]Violation, 0)
	completed := (Request{Taken: taken}).takenSet()

	// First semester of every scheduled course
	placed := make(map[string]int)
	for index, record := range records {
		for _, class := range record.Classes {
			if _, ok := placed[class.Id]; !ok {
				placed[class.Id] = index + 1
			}
		}
	}

	seen := make(map[string]bool)
	for index, record := range records {
		semester := index + 1
		report := func(course, format string, args ...any) {
			violations = append(violations, Violation{Semester: semester, Course: course, Message: fmt.Sprintf(format, args...)})
		}

		term, termErr := ParseTerm(record.Semester)
		if termErr != nil {
			report("", "%v", termErr)
		}

		for _, class := range record.Classes {
			//** Uniqueness
			if completed[class.Id] {
				report(class.Id, "already taken")
			} else if seen[class.Id] {
				report(class.Id, "scheduled more than once")
			}
			seen[class.Id] = true

			//** Offering
			if offering, err := catalog.ParseOffering(class.Recurring); err != nil {
				report(class.Id, "%v", err)
			} else if termErr == nil && !offeringAllows(offering, term) {
				report(class.Id, "offered %v only, scheduled in %v", strings.ToLower(string(offering)), term)
			}

			//** Prerequisite ordering
			for _, group := range ParsePrerequisites(class.Prerequisites) {
				earlier := lo.SomeBy(group, func(id string) bool {
					at, ok := placed[id]
					return completed[id] || (ok && at < semester)
				})
				scheduled := lo.SomeBy(group, func(id string) bool {
					_, ok := placed[id]
					return ok
				})
				if !earlier && scheduled {
					report(class.Id, "prerequisite %v is not completed before this semester", describeGroup(group))
				}
			}
		}

		//** Credits
		credits := lo.SumBy(record.Classes, func(class CourseRecord) int { return class.CreditHours })
		if credits > maxCredits {
			report("", "%v credit hours exceed the maximum of %v", credits, maxCredits)
		}
		if credits != record.TotalCreditHours {
			report("", "total of %v credit hours does not match the classes, which add up to %v", record.TotalCreditHours, credits)
		}
	}
	return violations
}
