package model

import (
	"strings"

	"github.com/samber/lo"
)

// PrerequisiteGroups is a conjunction of groups, each group a disjunction of course identifiers
type PrerequisiteGroups [][]string

// ParsePrerequisites reads an expression such as "CS170 or MATH170; PHYS101".
// Groups are separated by ";" and alternatives by the literal " or ". Empty tokens and empty groups are dropped
func ParsePrerequisites(raw string) PrerequisiteGroups {
	groups := make(PrerequisiteGroups, 0)
	for _, rawGroup := range strings.Split(raw, ";") {
		group := lo.FilterMap(strings.Split(rawGroup, " or "), func(alternative string, _ int) (string, bool) {
			alternative = strings.TrimSpace(alternative)
			return alternative, alternative != ""
		})
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// ParsePrerequisiteList reads list-shaped input, equivalent to joining the items with ";"
func ParsePrerequisiteList(raw []string) PrerequisiteGroups {
	return ParsePrerequisites(strings.Join(raw, ";"))
}

// Satisfied reports whether every group has at least one alternative for which isEarlier holds
func (groups PrerequisiteGroups) Satisfied(isEarlier func(id string) bool) bool {
	return lo.EveryBy(groups, func(group []string) bool {
		return lo.SomeBy(group, isEarlier)
	})
}

// Identifiers returns every referenced identifier once, in order of appearance
func (groups PrerequisiteGroups) Identifiers() []string {
	return lo.Uniq(lo.Flatten(groups))
}
