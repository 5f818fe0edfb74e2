package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrerequisites(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected PrerequisiteGroups
	}{
		{"Groups and alternatives", "CS170 or MATH170; PHYS101", PrerequisiteGroups{{"CS170", "MATH170"}, {"PHYS101"}}},
		{"Single course", "CS170", PrerequisiteGroups{{"CS170"}}},
		{"Empty groups are dropped", "CS170;;  ; MATH111", PrerequisiteGroups{{"CS170"}, {"MATH111"}}},
		{"Empty alternatives are dropped", "CS170 or  or MATH111", PrerequisiteGroups{{"CS170", "MATH111"}}},
		{"Empty string", "", PrerequisiteGroups{}},
		{"Case is preserved", "cs170 OR math111", PrerequisiteGroups{{"cs170 OR math111"}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, ParsePrerequisites(c.raw))
		})
	}
}

func TestParsePrerequisiteList(t *testing.T) {
	assert.Equal(t,
		ParsePrerequisites("CS170 or MATH170;PHYS101"),
		ParsePrerequisiteList([]string{"CS170 or MATH170", "PHYS101"}),
	)
	assert.Empty(t, ParsePrerequisiteList(nil))
}

func TestPrerequisiteGroupsHelpers(t *testing.T) {
	groups := ParsePrerequisites("CS170 or MATH170; PHYS101 or CS170")

	assert.Equal(t, []string{"CS170", "MATH170", "PHYS101"}, groups.Identifiers())

	assert.True(t, groups.Satisfied(func(id string) bool { return id == "CS170" }))
	assert.False(t, groups.Satisfied(func(id string) bool { return id == "MATH170" }))
	assert.True(t, PrerequisiteGroups{}.Satisfied(func(string) bool { return false }))
}
