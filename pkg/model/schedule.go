package model

import (
	"encoding/json"
	"fmt"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

// SemesterSchedule is one planned term. Credit totals are derived from membership and never stored
type SemesterSchedule struct {
	Year    int
	Term    Term
	Courses []catalog.Course
}

func (semester SemesterSchedule) TotalCreditHours() int {
	return lo.SumBy(semester.Courses, func(course catalog.Course) int { return course.CreditHours })
}

func (semester SemesterSchedule) CourseIds() []string {
	return lo.Map(semester.Courses, func(course catalog.Course, _ int) string { return course.Id })
}

func (semester SemesterSchedule) Contains(id string) bool {
	return lo.ContainsBy(semester.Courses, func(course catalog.Course) bool { return course.Id == id })
}

func (semester SemesterSchedule) String() string {
	return fmt.Sprintf("%v %v (%v credits): %v", semester.Term, semester.Year, semester.TotalCreditHours(), semester.CourseIds())
}

// CourseRecord is the serialized form of a scheduled course
type CourseRecord struct {
	Id                     string   `json:"class_id" yaml:"class_id"`
	Name                   string   `json:"class_name" yaml:"class_name"`
	CreditHours            int      `json:"credit_hours" yaml:"credit_hours"`
	Recurring              string   `json:"recurring" yaml:"recurring"`
	Prerequisites          string   `json:"prereqs" yaml:"prereqs"`
	RequirementDesignation []string `json:"requirement_designation" yaml:"requirement_designation"`
	Campus                 string   `json:"campus" yaml:"campus"`
}

// SemesterRecord is the serialized form of a SemesterSchedule
type SemesterRecord struct {
	Year             int            `json:"year" yaml:"year"`
	Semester         string         `json:"semester" yaml:"semester"`
	Classes          []CourseRecord `json:"classes" yaml:"classes"`
	TotalCreditHours int            `json:"total_credit_hours" yaml:"total_credit_hours"`
}

func NewCourseRecord(course catalog.Course) CourseRecord {
	designations := course.Designations
	if designations == nil {
		designations = []string{}
	}
	return CourseRecord{
		Id:                     course.Id,
		Name:                   course.Name,
		CreditHours:            course.CreditHours,
		Recurring:              string(course.Offering),
		Prerequisites:          course.Prerequisites,
		RequirementDesignation: designations,
		Campus:                 course.Campus,
	}
}

func (semester SemesterSchedule) Record() SemesterRecord {
	return SemesterRecord{
		Year:             semester.Year,
		Semester:         semester.Term.String(),
		Classes:          lo.Map(semester.Courses, func(course catalog.Course, _ int) CourseRecord { return NewCourseRecord(course) }),
		TotalCreditHours: semester.TotalCreditHours(),
	}
}

func (semester SemesterSchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(semester.Record())
}

// newSemesters lays out empty, labelled slots
func newSemesters(count, startYear int, start Term) []SemesterSchedule {
	semesters := make([]SemesterSchedule, count)
	for i := range semesters {
		semesters[i] = SemesterSchedule{
			Year:    YearOf(i+1, startYear, start),
			Term:    TermOf(i+1, start),
			Courses: make([]catalog.Course, 0),
		}
	}
	return semesters
}
