package catalog

import (
	"context"
	"errors"
)

type tagQuery struct {
	tag, subject string
}

// Cache memoizes the lookups of a single planning run, including NotFound answers.
// It is not safe for concurrent use and must not outlive the run that created it
type Cache struct {
	accessor Accessor
	courses  map[string]Course
	missing  map[string]error
	majors   map[string]MajorRequirement
	tags     map[tagQuery][]Course
	subjects map[string][]Course

	Lookups int // Number of calls forwarded to the wrapped accessor
}

// NewCache wraps the accessor with a per-run memo
func NewCache(accessor Accessor) *Cache {
	return &Cache{
		accessor: accessor,
		courses:  make(map[string]Course),
		missing:  make(map[string]error),
		majors:   make(map[string]MajorRequirement),
		tags:     make(map[tagQuery][]Course),
		subjects: make(map[string][]Course),
	}
}

func (cache *Cache) FetchCourse(ctx context.Context, id string) (Course, error) {
	if course, ok := cache.courses[id]; ok {
		return course, nil
	} else if err, ok := cache.missing[id]; ok {
		return Course{}, err
	}

	cache.Lookups++
	course, err := cache.accessor.FetchCourse(ctx, id)
	if errors.Is(err, ErrNotFound) {
		cache.missing[id] = err
		return Course{}, err
	} else if err != nil {
		return Course{}, err // Infrastructure failures are not memoized
	}

	cache.courses[id] = course
	return course, nil
}

func (cache *Cache) FetchMajorRequirements(ctx context.Context, major string) (MajorRequirement, error) {
	if requirement, ok := cache.majors[major]; ok {
		return requirement, nil
	}

	cache.Lookups++
	requirement, err := cache.accessor.FetchMajorRequirements(ctx, major)
	if err != nil {
		return MajorRequirement{}, err
	}
	cache.majors[major] = requirement
	return requirement, nil
}

func (cache *Cache) CoursesByRequirementTag(ctx context.Context, tag string, subjectFilter string) ([]Course, error) {
	query := tagQuery{tag: tag, subject: subjectFilter}
	if courses, ok := cache.tags[query]; ok {
		return courses, nil
	}

	cache.Lookups++
	courses, err := cache.accessor.CoursesByRequirementTag(ctx, tag, subjectFilter)
	if err != nil {
		return nil, err
	}
	cache.tags[query] = courses
	for _, course := range courses {
		cache.courses[course.Id] = course
	}
	return courses, nil
}

// CoursesBySubject forwards to the wrapped accessor when it can list subjects and returns nothing otherwise
func (cache *Cache) CoursesBySubject(ctx context.Context, subject string) ([]Course, error) {
	lister, ok := cache.accessor.(SubjectLister)
	if !ok {
		return nil, nil
	} else if courses, ok := cache.subjects[subject]; ok {
		return courses, nil
	}

	cache.Lookups++
	courses, err := lister.CoursesBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	cache.subjects[subject] = courses
	return courses, nil
}

// SectionsOf forwards to the wrapped accessor when it knows sections and returns nothing otherwise
func (cache *Cache) SectionsOf(ctx context.Context, courseId string) ([]Section, error) {
	lister, ok := cache.accessor.(SectionLister)
	if !ok {
		return nil, nil
	}
	cache.Lookups++
	return lister.SectionsOf(ctx, courseId)
}
