package model

import (
	"fmt"
	"strings"
)

type WarningKind string

const (
	WarningNotFound  WarningKind = "not_found"         // A referenced course or major does not resolve
	WarningPlacement WarningKind = "placement_failure" // A GER course or one of its prerequisites could not be placed
	WarningUnfilled  WarningKind = "unfilled"          // A requirement group ran out of candidates
)

type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Course  string      `json:"course,omitempty" yaml:"course,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

func (warning Warning) String() string {
	if warning.Course == "" {
		return fmt.Sprintf("%v: %v", warning.Kind, warning.Message)
	}
	return fmt.Sprintf("%v: %v: %v", warning.Kind, warning.Course, warning.Message)
}

type Status string

const (
	StatusFound         Status = "found"
	StatusInfeasible    Status = "infeasible"
	StatusMajorNotFound Status = "major_not_found"
)

type Stats struct {
	NodesExpanded  int  `json:"nodes_expanded" yaml:"nodes_expanded"`
	Exhausted      bool `json:"exhausted" yaml:"exhausted"`
	CatalogLookups int  `json:"catalog_lookups" yaml:"catalog_lookups"`
}

type Result struct {
	Status    Status             `json:"status"`
	Major     string             `json:"major"`
	Semesters []SemesterSchedule `json:"semesters"`
	Warnings  []Warning          `json:"warnings"`
	Stats     Stats              `json:"stats"`
}

// Request describes one planning run
type Request struct {
	Major             string
	Semesters         int
	MinCredits        int
	MaxCredits        int
	Start             Term
	StartYear         int
	Taken             []string // Completed courses, satisfying prerequisites from semester 0
	Additional        []string // Courses the student wants scheduled on top of the major
	ExcludedElectives []string // Elective candidates that must never be selected
	IncludeGER        bool
}

func (request Request) Validate() error {
	if strings.TrimSpace(request.Major) == "" {
		return fmt.Errorf("%w: major must not be empty", ErrInvalidProblem)
	} else if request.Semesters < 1 {
		return fmt.Errorf("%w: semester count must be positive: %v", ErrInvalidProblem, request.Semesters)
	} else if request.MinCredits < 0 || request.MinCredits > request.MaxCredits {
		return fmt.Errorf("%w: invalid credit bounds [%v, %v]", ErrInvalidProblem, request.MinCredits, request.MaxCredits)
	}
	return nil
}

// takenSet normalizes identifiers by trimming whitespace, case is preserved
func (request Request) takenSet() map[string]bool {
	taken := make(map[string]bool, len(request.Taken))
	for _, id := range request.Taken {
		if id = strings.TrimSpace(id); id != "" {
			taken[id] = true
		}
	}
	return taken
}
