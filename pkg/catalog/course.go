package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Offering is the recurring-offering tag of a course
type Offering string

const (
	OfferingAny        Offering = "" // Unset offering means the course may be taken in any term
	OfferingFall       Offering = "fall"
	OfferingSpring     Offering = "spring"
	OfferingFallSpring Offering = "fall/spring"
	OfferingSummer     Offering = "summer"
	OfferingAll        Offering = "fall/spring/summer"
)

var offerings = []Offering{OfferingAny, OfferingFall, OfferingSpring, OfferingFallSpring, OfferingSummer, OfferingAll}

// ParseOffering normalizes a raw recurring tag. Matching is case-insensitive and surrounding whitespace is ignored
func ParseOffering(raw string) (Offering, error) {
	offering := Offering(strings.ToLower(strings.TrimSpace(raw)))
	if !lo.Contains(offerings, offering) {
		return OfferingAny, fmt.Errorf("unknown recurring offering %q", raw)
	}
	return offering, nil
}

// FallOnly reports whether the course can only be scheduled in Fall terms
func (offering Offering) FallOnly() bool { return offering == OfferingFall }

// SpringOnly reports whether the course can only be scheduled in Spring terms
func (offering Offering) SpringOnly() bool { return offering == OfferingSpring }

// Course is a catalog record. Values are copied out of accessors, so callers never share mutable state with the catalog
type Course struct {
	Id            string
	Name          string
	CreditHours   int
	Offering      Offering
	Prerequisites string   // Raw prerequisite expression, parsed lazily by the planner
	Designations  []string // Requirement-designation tags
	Campus        string
	Description   string
}

// NewCourse validates and normalizes a course record
func NewCourse(id, name string, creditHours int, offering Offering, prerequisites string, designations []string, campus string) (Course, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Course{}, fmt.Errorf("course identifier must not be empty")
	} else if creditHours <= 0 {
		return Course{}, fmt.Errorf("course %q must have a positive credit-hour count: %v", id, creditHours)
	}

	offering, err := ParseOffering(string(offering))
	if err != nil {
		return Course{}, fmt.Errorf("course %q: %w", id, err)
	}

	return Course{
		Id:            id,
		Name:          name,
		CreditHours:   creditHours,
		Offering:      offering,
		Prerequisites: strings.TrimSpace(prerequisites),
		Designations: lo.FilterMap(designations, func(designation string, _ int) (string, bool) {
			designation = strings.TrimSpace(designation)
			return designation, designation != ""
		}),
		Campus: campus,
	}, nil
}

// WithDescription returns a copy of the course carrying the given description
func (course Course) WithDescription(description string) Course {
	course.Description = strings.TrimSpace(description)
	return course
}

// HasPrerequisites reports whether the course carries a non-empty prerequisite expression
func (course Course) HasPrerequisites() bool {
	return strings.Trim(course.Prerequisites, " ;") != ""
}

// MatchesDesignation reports whether any of the course's tags contains the designation (case-insensitive)
func (course Course) MatchesDesignation(designation string) bool {
	designation = strings.ToLower(strings.TrimSpace(designation))
	if designation == "" {
		return false
	}
	return lo.SomeBy(course.Designations, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), designation)
	})
}

// MatchesSubject reports whether the course identifier starts with the subject code (case-insensitive). An empty filter matches every course
func (course Course) MatchesSubject(subject string) bool {
	return subject == "" || strings.HasPrefix(strings.ToUpper(course.Id), strings.ToUpper(subject))
}

func (course Course) String() string {
	return fmt.Sprintf("%v: (%v credits)(%v)", course.Id, course.CreditHours, course.Offering)
}

// Section is a concrete offering of a course used by the time-aware planning mode
type Section struct {
	Course      Course
	Number      string
	Crn         int
	Professor   string
	MeetingTime string // Raw meeting-time string such as "MW 1pm-2:15pm"
	Room        string
}

var identifierPattern = regexp.MustCompile(`^([A-Za-z_]+)(\d+)`)

// SplitIdentifier extracts the subject code and the course number from an identifier such as "MATH221"
func SplitIdentifier(id string) (subject string, number int, ok bool) {
	match := identifierPattern.FindStringSubmatch(strings.TrimSpace(id))
	if match == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(match[1]), number, true
}
