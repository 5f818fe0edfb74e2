package model

import (
	"context"
	"errors"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

// workingSet is every course the search must place: the seeds plus the prerequisites pulled in to satisfy them
type workingSet struct {
	order         []string
	courses       map[string]catalog.Course
	prerequisites map[string]PrerequisiteGroups
}

func newWorkingSet() *workingSet {
	return &workingSet{
		order:         make([]string, 0),
		courses:       make(map[string]catalog.Course),
		prerequisites: make(map[string]PrerequisiteGroups),
	}
}

func (set *workingSet) add(course catalog.Course) bool {
	if _, ok := set.courses[course.Id]; ok {
		return false
	}
	set.order = append(set.order, course.Id)
	set.courses[course.Id] = course
	set.prerequisites[course.Id] = ParsePrerequisites(course.Prerequisites)
	return true
}

func (set *workingSet) contains(id string) bool {
	_, ok := set.courses[id]
	return ok
}

func (set *workingSet) list() []catalog.Course {
	return lo.Map(set.order, func(id string, _ int) catalog.Course { return set.courses[id] })
}

// buildWorkingSet grows the seeds to a fixed point. For every unsatisfied prerequisite group the first alternative
// that resolves is pulled in; groups with no resolvable alternative are waived
func buildWorkingSet(ctx context.Context, accessor catalog.Accessor, seeds []catalog.Course, taken map[string]bool, report func(Warning)) (*workingSet, error) {
	set := newWorkingSet()
	queue := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		if set.add(seed) {
			queue = append(queue, seed.Id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, group := range set.prerequisites[id] {
			if lo.SomeBy(group, func(alternative string) bool { return set.contains(alternative) || taken[alternative] }) {
				continue
			}

			resolved := false
			for _, alternative := range group {
				prerequisite, err := accessor.FetchCourse(ctx, alternative)
				if errors.Is(err, catalog.ErrNotFound) {
					report(Warning{Kind: WarningNotFound, Course: alternative, Message: "prerequisite of " + id + " is not in the catalog"})
					continue
				} else if err != nil {
					return nil, err
				}

				if set.add(prerequisite) {
					queue = append(queue, prerequisite.Id)
				}
				resolved = true
				break
			}

			if !resolved {
				report(Warning{Kind: WarningNotFound, Course: id, Message: "prerequisite group " + describeGroup(group) + " waived: no alternative exists"})
			}
		}
	}

	return set, nil
}

// directPrerequisites lists, per course, every alternative of every group that is part of the working set
func directPrerequisites(set *workingSet) map[string][]string {
	direct := make(map[string][]string, len(set.order))
	for _, id := range set.order {
		direct[id] = lo.Filter(set.prerequisites[id].Identifiers(), func(prerequisite string, _ int) bool {
			return prerequisite != id && set.contains(prerequisite)
		})
	}
	return direct
}

// transitiveClosure computes the full prerequisite set of each course. A course reached again while its own
// expansion is still in progress contributes its partial result, so cycles terminate
func transitiveClosure(order []string, direct map[string][]string) map[string][]string {
	memo := make(map[string]map[string]bool, len(order))

	var visit func(id string) map[string]bool
	visit = func(id string) map[string]bool {
		if closure, ok := memo[id]; ok {
			return closure // Finished or still in progress
		}

		closure := make(map[string]bool)
		memo[id] = closure
		for _, prerequisite := range direct[id] {
			closure[prerequisite] = true
			for transitive := range visit(prerequisite) {
				closure[transitive] = true
			}
		}
		return closure
	}

	closures := make(map[string][]string, len(order))
	for _, id := range order {
		closure := visit(id)
		closures[id] = lo.Filter(order, func(other string, _ int) bool { return other != id && closure[other] })
	}
	return closures
}

func describeGroup(group []string) string {
	return "[" + strings.Join(group, " or ") + "]"
}
