package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gorp/gorp/v3"
	"github.com/limaJavier/degreeplan/pkg/catalog"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite keeps a catalog and the saved plans in a single SQLite file
type SQLite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

var (
	_ catalog.Accessor      = (*SQLite)(nil)
	_ catalog.SubjectLister = (*SQLite)(nil)
	_ catalog.SectionLister = (*SQLite)(nil)
)

func NewSQLite(file string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %v: %w", file, err)
	}
	db.SetMaxOpenConns(1)

	// Initialize the database mapping, creating the tables on the first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(courseRow{}, "courses").SetKeys(false, "Id")
	dbmap.AddTableWithName(designationRow{}, "designations").SetKeys(true, "Id").SetUniqueTogether("course_id", "position")
	dbmap.AddTableWithName(majorRow{}, "majors").SetKeys(false, "Name")
	dbmap.AddTableWithName(referenceRow{}, "major_references").SetKeys(true, "Id").SetUniqueTogether("major", "group_index", "position")
	dbmap.AddTableWithName(sectionRow{}, "sections").SetKeys(true, "Id")
	dbmap.AddTableWithName(planRow{}, "plans").SetKeys(false, "Id")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot create tables: %w", err)
	}

	return &SQLite{db: db, dbmap: dbmap}, nil
}

func (store *SQLite) Close() error {
	return store.db.Close()
}

// Import replaces the stored catalog with the given one in a single transaction
func (store *SQLite) Import(ctx context.Context, memory *catalog.Memory) (err error) {
	tx, err := store.dbmap.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	executor := tx.WithContext(ctx)

	for _, table := range []string{"sections", "major_references", "majors", "designations", "courses"} {
		if _, err = executor.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("cannot clear %v: %w", table, err)
		}
	}

	for position, course := range memory.Courses() {
		row := newCourseRow(course, position)
		if err = executor.Insert(&row); err != nil {
			return fmt.Errorf("cannot insert course %q: %w", course.Id, err)
		}
		for index, designation := range course.Designations {
			if err = executor.Insert(&designationRow{CourseId: course.Id, Position: index, Designation: designation}); err != nil {
				return fmt.Errorf("cannot insert designations of %q: %w", course.Id, err)
			}
		}
	}

	for _, major := range memory.Majors() {
		if err = executor.Insert(&majorRow{Name: major.Name, Electives: len(major.Electives)}); err != nil {
			return fmt.Errorf("cannot insert major %q: %w", major.Name, err)
		}
		for _, reference := range referenceRows(major) {
			if err = executor.Insert(&reference); err != nil {
				return fmt.Errorf("cannot insert requirements of %q: %w", major.Name, err)
			}
		}
	}

	for _, section := range memory.Sections() {
		row := newSectionRow(section)
		if err = executor.Insert(&row); err != nil {
			return fmt.Errorf("cannot insert section %v of %q: %w", section.Number, section.Course.Id, err)
		}
	}

	return tx.Commit()
}

func (store *SQLite) FetchCourse(ctx context.Context, id string) (catalog.Course, error) {
	id = strings.TrimSpace(id)
	executor := store.dbmap.WithContext(ctx)

	var row courseRow
	err := executor.SelectOne(&row, "SELECT * FROM courses WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Course{}, fmt.Errorf("course %q: %w", id, catalog.ErrNotFound)
	} else if err != nil {
		return catalog.Course{}, fmt.Errorf("cannot fetch course %q: %w", id, err)
	}

	courses, err := store.withDesignations(executor, []courseRow{row})
	if err != nil {
		return catalog.Course{}, err
	}
	return courses[0], nil
}

func (store *SQLite) FetchMajorRequirements(ctx context.Context, major string) (catalog.MajorRequirement, error) {
	major = strings.TrimSpace(major)
	executor := store.dbmap.WithContext(ctx)

	var row majorRow
	err := executor.SelectOne(&row, "SELECT * FROM majors WHERE name = ?", major)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.MajorRequirement{}, fmt.Errorf("major %q: %w", major, catalog.ErrNotFound)
	} else if err != nil {
		return catalog.MajorRequirement{}, fmt.Errorf("cannot fetch major %q: %w", major, err)
	}

	var references []referenceRow
	if _, err := executor.Select(&references, "SELECT * FROM major_references WHERE major = ? ORDER BY group_index, position", major); err != nil {
		return catalog.MajorRequirement{}, fmt.Errorf("cannot fetch requirements of %q: %w", major, err)
	}
	return majorRequirement(row, references)
}

func (store *SQLite) CoursesByRequirementTag(ctx context.Context, tag string, subjectFilter string) ([]catalog.Course, error) {
	if strings.TrimSpace(tag) == "" {
		return []catalog.Course{}, nil
	}

	executor := store.dbmap.WithContext(ctx)
	var rows []courseRow
	_, err := executor.Select(&rows, `
		SELECT c.* FROM courses c
		WHERE EXISTS (
			SELECT 1 FROM designations d
			WHERE d.course_id = c.id AND lower(d.designation) LIKE '%' || ? || '%' ESCAPE '\'
		)
		AND upper(c.id) LIKE ? || '%' ESCAPE '\'
		ORDER BY c.position`,
		likePattern(tag), strings.ToUpper(likePattern(subjectFilter)),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot list courses tagged %q: %w", tag, err)
	}
	return store.withDesignations(executor, rows)
}

func (store *SQLite) CoursesBySubject(ctx context.Context, subject string) ([]catalog.Course, error) {
	executor := store.dbmap.WithContext(ctx)
	var rows []courseRow
	_, err := executor.Select(&rows, `SELECT * FROM courses WHERE upper(id) LIKE ? || '%' ESCAPE '\' ORDER BY position`, strings.ToUpper(likePattern(subject)))
	if err != nil {
		return nil, fmt.Errorf("cannot list courses of subject %q: %w", subject, err)
	}

	// LIKE matches CSE courses for CS; keep exact subjects only
	matching := make([]courseRow, 0, len(rows))
	for _, row := range rows {
		if rowSubject, _, ok := catalog.SplitIdentifier(row.Id); ok && strings.EqualFold(rowSubject, subject) {
			matching = append(matching, row)
		}
	}
	return store.withDesignations(executor, matching)
}

func (store *SQLite) SectionsOf(ctx context.Context, courseId string) ([]catalog.Section, error) {
	course, err := store.FetchCourse(ctx, courseId)
	if err != nil {
		return nil, err
	}

	var rows []sectionRow
	if _, err := store.dbmap.WithContext(ctx).Select(&rows, "SELECT * FROM sections WHERE course_id = ? ORDER BY id", course.Id); err != nil {
		return nil, fmt.Errorf("cannot list sections of %q: %w", course.Id, err)
	}

	sections := make([]catalog.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, row.section(course))
	}
	return sections, nil
}

func (store *SQLite) withDesignations(executor gorp.SqlExecutor, rows []courseRow) ([]catalog.Course, error) {
	courses := make([]catalog.Course, 0, len(rows))
	for _, row := range rows {
		var designations []designationRow
		if _, err := executor.Select(&designations, "SELECT * FROM designations WHERE course_id = ? ORDER BY position", row.Id); err != nil {
			return nil, fmt.Errorf("cannot fetch designations of %q: %w", row.Id, err)
		}

		course, err := row.course(designationsByCourse(designations)[row.Id])
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}
