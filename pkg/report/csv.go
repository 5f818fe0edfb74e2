package report

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/degreeplan/pkg/model"
)

// CsvCourse is one scheduled course of a plan
type CsvCourse struct {
	Semester      int    `csv:"semester"`
	Term          string `csv:"term"`
	Year          int    `csv:"year"`
	Id            string `csv:"class_id"`
	Name          string `csv:"class_name"`
	CreditHours   int    `csv:"credit_hours"`
	Recurring     string `csv:"recurring"`
	Prerequisites string `csv:"prereqs"`
	Designations  string `csv:"requirement_designation"`
}

func csvCourses(result model.Result) []CsvCourse {
	rows := make([]CsvCourse, 0)
	for index, semester := range result.Semesters {
		for _, course := range semester.Courses {
			rows = append(rows, CsvCourse{
				Semester:      index + 1,
				Term:          semester.Term.String(),
				Year:          semester.Year,
				Id:            course.Id,
				Name:          course.Name,
				CreditHours:   course.CreditHours,
				Recurring:     string(course.Offering),
				Prerequisites: course.Prerequisites,
				Designations:  strings.Join(course.Designations, "; "),
			})
		}
	}
	return rows
}

// WriteCSV writes one line per scheduled course
func WriteCSV(w io.Writer, result model.Result) error {
	return gocsv.Marshal(csvCourses(result), w)
}
