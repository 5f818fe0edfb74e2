package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned (wrapped) by accessors when a course or a major does not exist
var ErrNotFound = errors.New("not found")

// Accessor is the lookup interface the planning engine consumes
type Accessor interface {
	// Returns the course with the given identifier or an error wrapping ErrNotFound
	FetchCourse(ctx context.Context, id string) (Course, error)
	// Returns the requirements of the given major or an error wrapping ErrNotFound
	FetchMajorRequirements(ctx context.Context, major string) (MajorRequirement, error)
	// Returns every course whose designation tags contain the tag, optionally restricted to identifiers starting with subjectFilter
	CoursesByRequirementTag(ctx context.Context, tag string, subjectFilter string) ([]Course, error)
}

// SubjectLister is implemented by accessors able to enumerate the courses of a subject
type SubjectLister interface {
	CoursesBySubject(ctx context.Context, subject string) ([]Course, error)
}

// SectionLister is implemented by accessors that know the concrete sections of a course
type SectionLister interface {
	SectionsOf(ctx context.Context, courseId string) ([]Section, error)
}

func courseNotFound(id string) error {
	return fmt.Errorf("course %q: %w", id, ErrNotFound)
}

func majorNotFound(major string) error {
	return fmt.Errorf("major %q: %w", major, ErrNotFound)
}

// ExpandWildcard resolves a wildcard reference into the identifiers of every matching catalog course.
// Non-wildcard references, accessors without subject listing and wildcards with no match are returned unchanged
func ExpandWildcard(ctx context.Context, accessor Accessor, ref string) ([]string, error) {
	subject, threshold, ok := ParseWildcard(ref)
	if !ok {
		return []string{ref}, nil
	}

	lister, ok := accessor.(SubjectLister)
	if !ok {
		return []string{ref}, nil
	}

	courses, err := lister.CoursesBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("cannot expand wildcard %q: %w", ref, err)
	}

	ids := make([]string, 0, len(courses))
	for _, course := range courses {
		courseSubject, number, ok := SplitIdentifier(course.Id)
		if ok && courseSubject == subject && number >= threshold && !slices.Contains(ids, course.Id) {
			ids = append(ids, course.Id)
		}
	}

	if len(ids) == 0 {
		return []string{ref}, nil
	}
	return ids, nil
}
