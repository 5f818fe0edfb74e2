package model

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

// DefaultGERCeiling is the credit ceiling a semester may reach while GER courses are inserted
const DefaultGERCeiling = 19

// GERCategory is a general-education area: a designation tag and the number of courses it demands
type GERCategory struct {
	Name                 string `mapstructure:"name" yaml:"name"`
	Designation          string `mapstructure:"designation" yaml:"designation"`
	Slots                int    `mapstructure:"slots" yaml:"slots"`
	SubjectFilter        string `mapstructure:"subject_filter" yaml:"subject_filter"`
	WithoutPrerequisites bool   `mapstructure:"without_prerequisites" yaml:"without_prerequisites"`
}

// DefaultGERCategories returns the Gold plan
func DefaultGERCategories() []GERCategory {
	return []GERCategory{
		{Name: "First-Year Seminar", Designation: "First Year Seminar", Slots: 1},
		{Name: "First-Year Writing", Designation: "First Year Writing", Slots: 1},
		{Name: "Continuing Writing", Designation: "Writing", Slots: 3, WithoutPrerequisites: true},
		{Name: "Quantitative Reasoning", Designation: "Quantitative Reasoning", Slots: 1},
		{Name: "Science with Lab", Designation: "Lab", Slots: 1},
		{Name: "Science, Nature, Technology", Designation: "Science Nature", Slots: 1},
		{Name: "History, Society, Cultures", Designation: "History Society Cultures", Slots: 2},
		{Name: "Intercultural Communication", Designation: "Intercultural Communication", Slots: 2, SubjectFilter: "ITAL"},
		{Name: "Humanities, Arts, Performance", Designation: "Humanities Arts Performance", Slots: 2},
		{Name: "Personal Health", Designation: "Personal Health", Slots: 1},
		{Name: "Physical Education", Designation: "Physical Education", Slots: 2},
	}
}

func validateCategories(categories []GERCategory) error {
	for _, category := range categories {
		if category.Designation == "" {
			return fmt.Errorf("GER category %q has no designation", category.Name)
		} else if category.Slots < 0 {
			return fmt.Errorf("GER category %q has a negative slot count", category.Name)
		}
	}
	return nil
}

type gerPass struct {
	accessor   catalog.Accessor
	categories []GERCategory
	ceiling    int
	semesters  []SemesterSchedule
	taken      map[string]bool
	report     func(Warning)
}

// augment fills the unsatisfied GER slots. Courses already in the schedule are never moved or removed
func (pass *gerPass) augment(ctx context.Context) error {
	//** Count satisfied slots
	existing := lo.FlatMap(pass.semesters, func(semester SemesterSchedule, _ int) []catalog.Course { return semester.Courses })
	taken := lo.Keys(pass.taken)
	slices.Sort(taken)
	for _, id := range taken {
		course, err := pass.accessor.FetchCourse(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			continue // Completed courses outside the catalog carry no tags
		} else if err != nil {
			return err
		}
		existing = append(existing, course)
	}

	satisfied, err := satisfiedSlots(existing, pass.categories)
	if err != nil {
		return fmt.Errorf("cannot count satisfied GER slots: %w", err)
	}

	//** Select candidates for the remaining slots
	selected := make([]catalog.Course, 0)
	chosen := make(map[string]bool)
	for index, category := range pass.categories {
		remaining := category.Slots - satisfied[index]
		if remaining <= 0 {
			continue
		}

		candidates, err := pass.accessor.CoursesByRequirementTag(ctx, category.Designation, category.SubjectFilter)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			if remaining == 0 {
				break
			} else if chosen[candidate.Id] || pass.present(candidate.Id) || (category.WithoutPrerequisites && candidate.HasPrerequisites()) {
				continue
			}
			chosen[candidate.Id] = true
			selected = append(selected, candidate)
			remaining--
		}

		if remaining > 0 {
			pass.report(Warning{Kind: WarningUnfilled, Message: fmt.Sprintf("GER category %q is missing %v course(s): no candidates left", category.Name, remaining)})
		}
	}

	//** Ensure prerequisites of the selected courses
	for _, course := range selected {
		if err := pass.ensurePrerequisites(ctx, course, map[string]bool{course.Id: true}); err != nil {
			return err
		}
	}

	//** Place the selected courses
	for _, course := range selected {
		if pass.present(course.Id) {
			continue // Already inserted as a prerequisite of another GER course
		}
		if !pass.insert(course) {
			pass.report(Warning{Kind: WarningPlacement, Course: course.Id, Message: "GER course could not be placed due to credit or prerequisite constraints"})
		}
	}
	return nil
}

// ensurePrerequisites inserts, depth first, the first resolvable alternative of every group the schedule does not satisfy yet
func (pass *gerPass) ensurePrerequisites(ctx context.Context, course catalog.Course, guard map[string]bool) error {
	for _, group := range ParsePrerequisites(course.Prerequisites) {
		if lo.SomeBy(group, pass.present) {
			continue
		}

		for _, alternative := range group {
			if guard[alternative] {
				continue // Cyclic prerequisite
			}

			prerequisite, err := pass.accessor.FetchCourse(ctx, alternative)
			if errors.Is(err, catalog.ErrNotFound) {
				pass.report(Warning{Kind: WarningNotFound, Course: alternative, Message: "prerequisite of GER course " + course.Id + " is not in the catalog"})
				continue
			} else if err != nil {
				return err
			}

			guard[alternative] = true
			if err := pass.ensurePrerequisites(ctx, prerequisite, guard); err != nil {
				return err
			}
			if !pass.insert(prerequisite) {
				pass.report(Warning{Kind: WarningPlacement, Course: prerequisite.Id, Message: "prerequisite of GER course " + course.Id + " could not be placed"})
			}
			break
		}
	}
	return nil
}

// insert appends the course to the earliest semester offering it under the ceiling whose predecessors satisfy its
// prerequisites
func (pass *gerPass) insert(course catalog.Course) bool {
	groups := ParsePrerequisites(course.Prerequisites)
	for index := range pass.semesters {
		if !offeringAllows(course.Offering, pass.semesters[index].Term) ||
			pass.semesters[index].TotalCreditHours()+course.CreditHours > pass.ceiling {
			continue
		}
		if groups.Satisfied(func(id string) bool { return pass.scheduledBefore(id, index) }) {
			pass.semesters[index].Courses = append(pass.semesters[index].Courses, course)
			return true
		}
	}
	return false
}

func (pass *gerPass) present(id string) bool {
	return pass.taken[id] || lo.SomeBy(pass.semesters, func(semester SemesterSchedule) bool { return semester.Contains(id) })
}

func (pass *gerPass) scheduledBefore(id string, index int) bool {
	if pass.taken[id] {
		return true
	}
	for earlier := range index {
		if pass.semesters[earlier].Contains(id) {
			return true
		}
	}
	return false
}
