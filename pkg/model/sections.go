package model

import (
	"context"
	"errors"
	"slices"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// NextSemesterResult is a registration proposal for the upcoming term drawn from a full plan
type NextSemesterResult struct {
	Plan     Result
	Semester SemesterSchedule
	Sections []catalog.Section
	Leftover []string // Planned courses left out of the upcoming term
	Stats    Stats
}

type sectionOption struct {
	course   catalog.Course
	sections []catalog.Section
}

// PlanNextSemester plans the whole degree and then picks concrete sections for the upcoming term: only courses whose
// prerequisites are all completed qualify, no two sections share a meeting time and the credit total is maximized
// without exceeding the maximum
func (engine *Engine) PlanNextSemester(ctx context.Context, request Request) (NextSemesterResult, error) {
	plan, err := engine.Plan(ctx, request)
	if err != nil {
		return NextSemesterResult{}, err
	}

	result := NextSemesterResult{
		Plan:     plan,
		Semester: newSemesters(1, request.StartYear, request.Start)[0],
		Sections: []catalog.Section{},
		Leftover: []string{},
	}
	if plan.Status != StatusFound {
		return result, nil
	}

	run := engine.newRun(request.Major)
	taken := request.takenSet()
	planned := lo.FlatMap(plan.Semesters, func(semester SemesterSchedule, _ int) []catalog.Course { return semester.Courses })

	//** Collect eligible courses and their sections
	_, listsSections := engine.accessor.(catalog.SectionLister)
	options := make([]sectionOption, 0)
	for _, course := range planned {
		eligible, err := run.completed(ctx, course, taken)
		if err != nil {
			return NextSemesterResult{}, err
		} else if !eligible {
			continue
		}

		sections := []catalog.Section{{Course: course}} // Without section data a course is one untimed section
		if listsSections {
			sections, err = run.catalog.SectionsOf(ctx, course.Id)
			if err != nil {
				return NextSemesterResult{}, err
			} else if len(sections) == 0 {
				run.logger.Debug("course has no sections", zap.String("course", course.Id))
				continue
			}
		}
		options = append(options, sectionOption{course: course, sections: sections})
	}

	//** Search the best combination
	chosen, nodes, exhausted := engine.selectSections(ctx, options, request.MaxCredits)
	result.Stats = Stats{NodesExpanded: nodes, Exhausted: exhausted, CatalogLookups: run.catalog.Lookups}
	result.Sections = chosen
	result.Semester.Courses = lo.Map(chosen, func(section catalog.Section, _ int) catalog.Course { return section.Course })
	result.Leftover = lo.FilterMap(planned, func(course catalog.Course, _ int) (string, bool) {
		return course.Id, !result.Semester.Contains(course.Id)
	})
	return result, nil
}

// selectSections runs a depth-first branch and bound over the options. Each depth either takes one section of the
// course or skips it; the search stops early once the maximum is met exactly
func (engine *Engine) selectSections(ctx context.Context, options []sectionOption, maxCredits int) ([]catalog.Section, int, bool) {
	n := len(options)

	// Credits still obtainable from each depth onwards, used to prune branches that cannot beat the best
	potential := make([]int, n+1)
	for depth := n - 1; depth >= 0; depth-- {
		potential[depth] = potential[depth+1] + options[depth].course.CreditHours
	}

	type frame struct {
		next    int // Next option to try; len(sections) means skipping the course
		applied int // Section taken at this depth, -1 when skipped
	}
	frames := make([]frame, n+1)
	frames[0] = frame{applied: -1}

	current := make([]catalog.Section, 0, n)
	meetingTimes := make(map[string]bool)
	total := 0

	best := []catalog.Section{}
	bestTotal := 0
	record := func() {
		if total > bestTotal {
			bestTotal = total
			best = slices.Clone(current)
		}
	}

	undo := func(depth int) {
		if frames[depth].applied < 0 {
			return
		}
		section := options[depth].sections[frames[depth].applied]
		total -= section.Course.CreditHours
		delete(meetingTimes, section.MeetingTime)
		current = current[:len(current)-1]
		frames[depth].applied = -1
	}

	nodes := 0
	depth := 0
	for depth >= 0 {
		if depth == n || total+potential[depth] <= bestTotal {
			record()
			if depth--; depth >= 0 {
				undo(depth)
			}
			continue
		}

		option := options[depth]
		top := &frames[depth]
		advanced := false
		for top.next <= len(option.sections) {
			index := top.next
			top.next++

			nodes++
			if nodes > engine.maxNodes || (nodes%contextCheckInterval == 0 && ctx.Err() != nil) {
				record()
				return best, nodes, true
			}

			if index == len(option.sections) {
				advanced = true
				break
			}

			section := option.sections[index]
			if total+section.Course.CreditHours > maxCredits || (section.MeetingTime != "" && meetingTimes[section.MeetingTime]) {
				continue
			}
			total += section.Course.CreditHours
			if section.MeetingTime != "" {
				meetingTimes[section.MeetingTime] = true
			}
			current = append(current, section)
			top.applied = index
			advanced = true
			break
		}

		if !advanced {
			if depth--; depth >= 0 {
				undo(depth)
			}
			continue
		}

		if total == maxCredits {
			record()
			return best, nodes, false
		}
		depth++
		frames[depth] = frame{applied: -1}
	}

	return best, nodes, false
}

// completed reports whether every prerequisite group of the course has a taken alternative. A group none of whose
// alternatives is in the catalog is waived, the same way planning waives it
func (run *run) completed(ctx context.Context, course catalog.Course, taken map[string]bool) (bool, error) {
	for _, group := range ParsePrerequisites(course.Prerequisites) {
		if lo.SomeBy(group, func(id string) bool { return taken[id] }) {
			continue
		}
		for _, id := range group {
			_, err := run.catalog.FetchCourse(ctx, id)
			if err == nil {
				return false, nil
			} else if !errors.Is(err, catalog.ErrNotFound) {
				return false, err
			}
		}
	}
	return true, nil
}
