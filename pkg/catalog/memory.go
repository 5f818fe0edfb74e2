package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Memory is an in-memory catalog. Courses keep their insertion order in every listing
type Memory struct {
	order    []string
	courses  map[string]Course
	majors   map[string]MajorRequirement
	sections map[string][]Section
}

var (
	_ Accessor      = (*Memory)(nil)
	_ SubjectLister = (*Memory)(nil)
	_ SectionLister = (*Memory)(nil)
)

// NewMemory builds an in-memory catalog, rejecting duplicate courses, duplicate majors and sections of unknown courses
func NewMemory(courses []Course, majors []MajorRequirement, sections []Section) (*Memory, error) {
	memory := &Memory{
		order:    make([]string, 0, len(courses)),
		courses:  make(map[string]Course, len(courses)),
		majors:   make(map[string]MajorRequirement, len(majors)),
		sections: make(map[string][]Section),
	}

	for _, course := range courses {
		if _, ok := memory.courses[course.Id]; ok {
			return nil, fmt.Errorf("duplicate course %q", course.Id)
		}
		memory.courses[course.Id] = course
		memory.order = append(memory.order, course.Id)
	}

	for _, major := range majors {
		if _, ok := memory.majors[major.Name]; ok {
			return nil, fmt.Errorf("duplicate major %q", major.Name)
		}
		memory.majors[major.Name] = major
	}

	for _, section := range sections {
		if _, ok := memory.courses[section.Course.Id]; !ok {
			return nil, fmt.Errorf("section %v references unknown course %q", section.Number, section.Course.Id)
		}
		memory.sections[section.Course.Id] = append(memory.sections[section.Course.Id], section)
	}

	return memory, nil
}

// Courses returns every course in insertion order
func (memory *Memory) Courses() []Course {
	return lo.Map(memory.order, func(id string, _ int) Course { return memory.courses[id] })
}

// Majors returns every major requirement record sorted by name
func (memory *Memory) Majors() []MajorRequirement {
	majors := lo.Values(memory.majors)
	slices.SortFunc(majors, func(a, b MajorRequirement) int { return strings.Compare(a.Name, b.Name) })
	return majors
}

// Sections returns every section in course insertion order
func (memory *Memory) Sections() []Section {
	return lo.FlatMap(memory.order, func(id string, _ int) []Section { return memory.sections[id] })
}

func (memory *Memory) FetchCourse(_ context.Context, id string) (Course, error) {
	course, ok := memory.courses[strings.TrimSpace(id)]
	if !ok {
		return Course{}, courseNotFound(id)
	}
	return course, nil
}

func (memory *Memory) FetchMajorRequirements(_ context.Context, major string) (MajorRequirement, error) {
	requirement, ok := memory.majors[strings.TrimSpace(major)]
	if !ok {
		return MajorRequirement{}, majorNotFound(major)
	}
	return requirement, nil
}

func (memory *Memory) CoursesByRequirementTag(_ context.Context, tag string, subjectFilter string) ([]Course, error) {
	return lo.Filter(memory.Courses(), func(course Course, _ int) bool {
		return course.MatchesDesignation(tag) && course.MatchesSubject(subjectFilter)
	}), nil
}

func (memory *Memory) CoursesBySubject(_ context.Context, subject string) ([]Course, error) {
	return lo.Filter(memory.Courses(), func(course Course, _ int) bool {
		courseSubject, _, ok := SplitIdentifier(course.Id)
		return ok && strings.EqualFold(courseSubject, subject)
	}), nil
}

func (memory *Memory) SectionsOf(_ context.Context, courseId string) ([]Section, error) {
	if _, ok := memory.courses[courseId]; !ok {
		return nil, courseNotFound(courseId)
	}
	return memory.sections[courseId], nil
}
