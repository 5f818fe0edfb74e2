package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limaJavier/degreeplan/pkg/catalog"
)

const createSchema = `
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	credit_hours INTEGER NOT NULL,
	offering TEXT NOT NULL,
	prerequisites TEXT NOT NULL,
	designations TEXT[] NOT NULL,
	campus TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS majors (
	name TEXT PRIMARY KEY,
	electives INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS major_references (
	major TEXT NOT NULL REFERENCES majors (name) ON DELETE CASCADE,
	group_index INTEGER NOT NULL,
	position INTEGER NOT NULL,
	alternatives TEXT NOT NULL,
	PRIMARY KEY (major, group_index, position)
);
CREATE TABLE IF NOT EXISTS sections (
	id SERIAL PRIMARY KEY,
	course_id TEXT NOT NULL REFERENCES courses (id) ON DELETE CASCADE,
	number TEXT NOT NULL,
	crn INTEGER NOT NULL,
	professor TEXT NOT NULL,
	meeting_time TEXT NOT NULL,
	room TEXT NOT NULL
);`

const clearCatalog = `TRUNCATE sections, major_references, majors, courses`

const insertCourse = `INSERT INTO courses (id, position, name, credit_hours, offering, prerequisites, designations, campus, description) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
const insertMajor = `INSERT INTO majors (name, electives) VALUES ($1, $2)`
const insertReference = `INSERT INTO major_references (major, group_index, position, alternatives) VALUES ($1, $2, $3, $4)`
const insertSection = `INSERT INTO sections (course_id, number, crn, professor, meeting_time, room) VALUES ($1, $2, $3, $4, $5, $6)`

const courseColumns = `id, position, name, credit_hours, offering, prerequisites, designations, campus, description`

const selectCourse = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
const selectCoursesByTag = `SELECT ` + courseColumns + ` FROM courses
WHERE EXISTS (SELECT 1 FROM unnest(designations) AS designation WHERE designation ILIKE '%' || $1 || '%')
AND id ILIKE $2 || '%'
ORDER BY position`
const selectCoursesBySubject = `SELECT ` + courseColumns + ` FROM courses WHERE id ILIKE $1 || '%' ORDER BY position`
const selectMajor = `SELECT name, electives FROM majors WHERE name = $1`
const selectReferences = `SELECT major, group_index, position, alternatives FROM major_references WHERE major = $1 ORDER BY group_index, position`
const selectSections = `SELECT id, course_id, number, crn, professor, meeting_time, room FROM sections WHERE course_id = $1 ORDER BY id`

// Postgres is a catalog accessor backed by a PostgreSQL connection pool
type Postgres struct {
	Pool *pgxpool.Pool
}

var (
	_ catalog.Accessor      = (*Postgres)(nil)
	_ catalog.SubjectLister = (*Postgres)(nil)
	_ catalog.SectionLister = (*Postgres)(nil)
)

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot reach postgres: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

func (store *Postgres) Close() {
	store.Pool.Close()
}

func (store *Postgres) Migrate(ctx context.Context) error {
	if _, err := store.Pool.Exec(ctx, createSchema); err != nil {
		return fmt.Errorf("cannot create schema: %w", err)
	}
	return nil
}

// Import replaces the stored catalog with the given one in a single transaction
func (store *Postgres) Import(ctx context.Context, memory *catalog.Memory) error {
	return pgx.BeginFunc(ctx, store.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, clearCatalog); err != nil {
			return fmt.Errorf("cannot clear catalog: %w", err)
		}

		batch := &pgx.Batch{}
		for position, course := range memory.Courses() {
			row := newCourseRow(course, position)
			designations := course.Designations
			if designations == nil {
				designations = []string{} // NULL would violate the column constraint
			}
			batch.Queue(insertCourse, row.Id, row.Position, row.Name, row.CreditHours, row.Offering, row.Prerequisites, designations, row.Campus, row.Description)
		}
		for _, major := range memory.Majors() {
			batch.Queue(insertMajor, major.Name, len(major.Electives))
			for _, reference := range referenceRows(major) {
				batch.Queue(insertReference, reference.Major, reference.GroupIndex, reference.Position, reference.Alternatives)
			}
		}
		for _, section := range memory.Sections() {
			row := newSectionRow(section)
			batch.Queue(insertSection, row.CourseId, row.Number, row.Crn, row.Professor, row.MeetingTime, row.Room)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("cannot insert catalog: %w", err)
		}
		return nil
	})
}

func (store *Postgres) FetchCourse(ctx context.Context, id string) (catalog.Course, error) {
	id = strings.TrimSpace(id)
	rows, err := store.Pool.Query(ctx, selectCourse, id)
	if err != nil {
		return catalog.Course{}, fmt.Errorf("cannot fetch course %q: %w", id, err)
	}
	courses, err := collectCourses(rows)
	if err != nil {
		return catalog.Course{}, fmt.Errorf("cannot fetch course %q: %w", id, err)
	} else if len(courses) == 0 {
		return catalog.Course{}, fmt.Errorf("course %q: %w", id, catalog.ErrNotFound)
	}
	return courses[0], nil
}

func (store *Postgres) FetchMajorRequirements(ctx context.Context, major string) (catalog.MajorRequirement, error) {
	major = strings.TrimSpace(major)

	var row majorRow
	err := store.Pool.QueryRow(ctx, selectMajor, major).Scan(&row.Name, &row.Electives)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.MajorRequirement{}, fmt.Errorf("major %q: %w", major, catalog.ErrNotFound)
	} else if err != nil {
		return catalog.MajorRequirement{}, fmt.Errorf("cannot fetch major %q: %w", major, err)
	}

	rows, err := store.Pool.Query(ctx, selectReferences, major)
	if err != nil {
		return catalog.MajorRequirement{}, fmt.Errorf("cannot fetch requirements of %q: %w", major, err)
	}
	references, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (referenceRow, error) {
		var reference referenceRow
		err := row.Scan(&reference.Major, &reference.GroupIndex, &reference.Position, &reference.Alternatives)
		return reference, err
	})
	if err != nil {
		return catalog.MajorRequirement{}, fmt.Errorf("cannot fetch requirements of %q: %w", major, err)
	}
	return majorRequirement(row, references)
}

func (store *Postgres) CoursesByRequirementTag(ctx context.Context, tag string, subjectFilter string) ([]catalog.Course, error) {
	if strings.TrimSpace(tag) == "" {
		return []catalog.Course{}, nil
	}
	rows, err := store.Pool.Query(ctx, selectCoursesByTag, likePattern(tag), likePattern(subjectFilter))
	if err != nil {
		return nil, fmt.Errorf("cannot list courses tagged %q: %w", tag, err)
	}
	return collectCourses(rows)
}

func (store *Postgres) CoursesBySubject(ctx context.Context, subject string) ([]catalog.Course, error) {
	rows, err := store.Pool.Query(ctx, selectCoursesBySubject, likePattern(subject))
	if err != nil {
		return nil, fmt.Errorf("cannot list courses of subject %q: %w", subject, err)
	}
	courses, err := collectCourses(rows)
	if err != nil {
		return nil, err
	}

	matching := make([]catalog.Course, 0, len(courses))
	for _, course := range courses {
		if courseSubject, _, ok := catalog.SplitIdentifier(course.Id); ok && strings.EqualFold(courseSubject, subject) {
			matching = append(matching, course)
		}
	}
	return matching, nil
}

func (store *Postgres) SectionsOf(ctx context.Context, courseId string) ([]catalog.Section, error) {
	course, err := store.FetchCourse(ctx, courseId)
	if err != nil {
		return nil, err
	}

	rows, err := store.Pool.Query(ctx, selectSections, course.Id)
	if err != nil {
		return nil, fmt.Errorf("cannot list sections of %q: %w", course.Id, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Section, error) {
		var section sectionRow
		err := row.Scan(&section.Id, &section.CourseId, &section.Number, &section.Crn, &section.Professor, &section.MeetingTime, &section.Room)
		return section.section(course), err
	})
}

func collectCourses(rows pgx.Rows) ([]catalog.Course, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Course, error) {
		var course courseRow
		var designations []string
		err := row.Scan(&course.Id, &course.Position, &course.Name, &course.CreditHours, &course.Offering, &course.Prerequisites, &designations, &course.Campus, &course.Description)
		if err != nil {
			return catalog.Course{}, err
		}
		return course.course(designations)
	})
}
