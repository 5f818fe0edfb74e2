package store

import (
	"fmt"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

const (
	requiredGroup        = 0 // Elective groups are numbered from 1
	alternativeSeparator = " or "
)

type courseRow struct {
	Id            string `db:"id"`
	Position      int    `db:"position"`
	Name          string `db:"name"`
	CreditHours   int    `db:"credit_hours"`
	Offering      string `db:"offering"`
	Prerequisites string `db:"prerequisites"`
	Campus        string `db:"campus"`
	Description   string `db:"description"`
}

type designationRow struct {
	Id          int64  `db:"id"`
	CourseId    string `db:"course_id"`
	Position    int    `db:"position"`
	Designation string `db:"designation"`
}

type majorRow struct {
	Name      string `db:"name"`
	Electives int    `db:"electives"`
}

type referenceRow struct {
	Id           int64  `db:"id"`
	Major        string `db:"major"`
	GroupIndex   int    `db:"group_index"`
	Position     int    `db:"position"`
	Alternatives string `db:"alternatives"`
}

type sectionRow struct {
	Id          int64  `db:"id"`
	CourseId    string `db:"course_id"`
	Number      string `db:"number"`
	Crn         int    `db:"crn"`
	Professor   string `db:"professor"`
	MeetingTime string `db:"meeting_time"`
	Room        string `db:"room"`
}

func newCourseRow(course catalog.Course, position int) courseRow {
	return courseRow{
		Id:            course.Id,
		Position:      position,
		Name:          course.Name,
		CreditHours:   course.CreditHours,
		Offering:      string(course.Offering),
		Prerequisites: course.Prerequisites,
		Campus:        course.Campus,
		Description:   course.Description,
	}
}

func (row courseRow) course(designations []string) (catalog.Course, error) {
	offering, err := catalog.ParseOffering(row.Offering)
	if err != nil {
		return catalog.Course{}, fmt.Errorf("stored course %q: %w", row.Id, err)
	}
	course, err := catalog.NewCourse(row.Id, row.Name, row.CreditHours, offering, row.Prerequisites, designations, row.Campus)
	if err != nil {
		return catalog.Course{}, fmt.Errorf("stored course %q: %w", row.Id, err)
	}
	return course.WithDescription(row.Description), nil
}

// referenceRows flattens the required list and the elective groups of a major
func referenceRows(major catalog.MajorRequirement) []referenceRow {
	rows := make([]referenceRow, 0)
	appendGroup := func(group int, refs []catalog.CourseRef) {
		for position, ref := range refs {
			rows = append(rows, referenceRow{
				Major:        major.Name,
				GroupIndex:   group,
				Position:     position,
				Alternatives: strings.Join(ref, alternativeSeparator),
			})
		}
	}

	appendGroup(requiredGroup, major.Required)
	for index, group := range major.Electives {
		appendGroup(index+1, group)
	}
	return rows
}

// majorRequirement rebuilds a major from rows ordered by group and position
func majorRequirement(row majorRow, references []referenceRow) (catalog.MajorRequirement, error) {
	required := make([]catalog.CourseRef, 0)
	electives := make([][]catalog.CourseRef, row.Electives)
	for i := range electives {
		electives[i] = make([]catalog.CourseRef, 0)
	}

	for _, reference := range references {
		ref := catalog.CourseRef(strings.Split(reference.Alternatives, alternativeSeparator))
		if reference.GroupIndex == requiredGroup {
			required = append(required, ref)
		} else if reference.GroupIndex <= row.Electives {
			electives[reference.GroupIndex-1] = append(electives[reference.GroupIndex-1], ref)
		} else {
			return catalog.MajorRequirement{}, fmt.Errorf("stored major %q references elective group %v of %v", row.Name, reference.GroupIndex, row.Electives)
		}
	}
	return catalog.NewMajorRequirement(row.Name, required, electives)
}

func newSectionRow(section catalog.Section) sectionRow {
	return sectionRow{
		CourseId:    section.Course.Id,
		Number:      section.Number,
		Crn:         section.Crn,
		Professor:   section.Professor,
		MeetingTime: section.MeetingTime,
		Room:        section.Room,
	}
}

func (row sectionRow) section(course catalog.Course) catalog.Section {
	return catalog.Section{
		Course:      course,
		Number:      row.Number,
		Crn:         row.Crn,
		Professor:   row.Professor,
		MeetingTime: row.MeetingTime,
		Room:        row.Room,
	}
}

// likePattern escapes LIKE wildcards; queries declare '\' as the escape character
func likePattern(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(strings.TrimSpace(value)))
}

func designationsByCourse(rows []designationRow) map[string][]string {
	return lo.MapValues(lo.GroupBy(rows, func(row designationRow) string { return row.CourseId }), func(rows []designationRow, _ string) []string {
		return lo.Map(rows, func(row designationRow, _ int) string { return row.Designation })
	})
}
