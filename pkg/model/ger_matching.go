package model

import (
	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type gerSlot struct {
	category int
	ordinal  int
}

// satisfiedSlots counts, per category, the slots already covered by courses. Each course covers at most one slot
// and the total is maximal, so a course carrying several tags is credited where it helps most
func satisfiedSlots(courses []catalog.Course, categories []GERCategory) (map[int]int, error) {
	satisfied := make(map[int]int, len(categories))

	slots := make([]gerSlot, 0)
	for category, definition := range categories {
		for ordinal := range definition.Slots {
			slots = append(slots, gerSlot{category: category, ordinal: ordinal})
		}
	}
	if len(courses) == 0 || len(slots) == 0 {
		return satisfied, nil
	}

	// Build neighbors predicate based on designation tags
	neighbors := func(courseAny any, slotAny any) (bool, error) {
		course := courseAny.(catalog.Course)
		slot := slotAny.(gerSlot)
		return course.MatchesDesignation(categories[slot.category].Designation), nil
	}

	// Transform courses and slots to slices of any
	coursesAny, slotsAny := lo.Map(courses, func(course catalog.Course, _ int) any { return course }), lo.Map(slots, func(slot gerSlot, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(coursesAny, slotsAny, neighbors)
	if err != nil {
		return nil, err
	}

	for _, edge := range graph.LargestMatching() {
		slot := slots[edge.Node2-len(courses)]
		satisfied[slot.category]++
	}
	return satisfied, nil
}
