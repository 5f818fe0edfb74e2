package model

type indexerImplementation struct {
	courses   uint64
	semesters uint64
}

func (indexer *indexerImplementation) Index(course, semester uint64) uint64 {
	return course*indexer.semesters + semester + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (course, semester uint64) {
	index = index - 1
	semester = index % indexer.semesters
	course = index / indexer.semesters
	return course, semester
}

func (indexer *indexerImplementation) Variables() uint64 {
	return indexer.courses * indexer.semesters
}
