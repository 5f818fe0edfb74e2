package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxElectiveGroups is the number of elective groups a major may declare
const MaxElectiveGroups = 6

// CourseRef references a course through one or more alternatives. The first alternative is the preferred one
type CourseRef []string

// Primary returns the first alternative of the reference
func (ref CourseRef) Primary() string {
	if len(ref) == 0 {
		return ""
	}
	return ref[0]
}

// IsWildcard reports whether the reference is a subject wildcard such as "CS200*"
func (ref CourseRef) IsWildcard() bool {
	_, _, ok := ParseWildcard(ref.Primary())
	return ok
}

// MajorRequirement lists the courses a major demands
type MajorRequirement struct {
	Name      string
	Required  []CourseRef
	Electives [][]CourseRef
}

// NewMajorRequirement validates a major's requirement record
func NewMajorRequirement(name string, required []CourseRef, electives [][]CourseRef) (MajorRequirement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MajorRequirement{}, fmt.Errorf("major name must not be empty")
	} else if len(electives) > MaxElectiveGroups {
		return MajorRequirement{}, fmt.Errorf("major %q declares %v elective groups, at most %v are allowed", name, len(electives), MaxElectiveGroups)
	}

	clean := func(refs []CourseRef) []CourseRef {
		return lo.FilterMap(refs, func(ref CourseRef, _ int) (CourseRef, bool) {
			ref = lo.FilterMap(ref, func(alternative string, _ int) (string, bool) {
				alternative = strings.TrimSpace(alternative)
				return alternative, alternative != ""
			})
			return ref, len(ref) > 0
		})
	}

	return MajorRequirement{
		Name:      name,
		Required:  clean(required),
		Electives: lo.Map(electives, func(group []CourseRef, _ int) []CourseRef { return clean(group) }),
	}, nil
}

// ParseCourseRefs reads a requirement string such as "CS170; MATH111 or MATH112" into references
func ParseCourseRefs(raw string) []CourseRef {
	refs := make([]CourseRef, 0)
	for _, item := range strings.Split(raw, ";") {
		ref := CourseRef(lo.FilterMap(strings.Split(item, " or "), func(alternative string, _ int) (string, bool) {
			alternative = strings.TrimSpace(alternative)
			return alternative, alternative != ""
		}))
		if len(ref) > 0 {
			refs = append(refs, ref)
		}
	}
	return refs
}

var wildcardPattern = regexp.MustCompile(`^([A-Za-z_]+)(\d+)\*$`)

// ParseWildcard extracts the subject and the minimum course number of a wildcard reference such as "CS200*"
func ParseWildcard(ref string) (subject string, threshold int, ok bool) {
	match := wildcardPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if match == nil {
		return "", 0, false
	}
	threshold, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(match[1]), threshold, true
}
