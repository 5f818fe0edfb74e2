package model

// indexer interface is design to give a unique index to a course-semester placement variable and vice versa
type indexer interface {
	// Returns a unique index to a combination of course and semester (both 0-indexed)
	Index(course, semester uint64) uint64
	// Returns the course and semester of a unique index
	Attributes(index uint64) (course uint64, semester uint64)
	// Returns the number of variables
	Variables() uint64
}

func newIndexer(courses, semesters uint64) indexer {
	return &indexerImplementation{
		courses:   courses,
		semesters: semesters,
	}
}
