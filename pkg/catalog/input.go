package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type RawCourse struct {
	Id            string `mapstructure:"class_id"`
	Name          string `mapstructure:"class_name"`
	CreditHours   int    `mapstructure:"credit_hours"`
	Recurring     string `mapstructure:"recurring"`
	Prerequisites any    `mapstructure:"prereqs"`                 // String or list of strings
	Designations  any    `mapstructure:"requirement_designation"` // String or list of strings
	Campus        string `mapstructure:"campus"`
	Description   string `mapstructure:"class_desc"`
}

type RawMajor struct {
	Name      string `mapstructure:"major_name"`
	Required  any    `mapstructure:"required_classes"`
	Elective1 any    `mapstructure:"elective1"`
	Elective2 any    `mapstructure:"elective2"`
	Elective3 any    `mapstructure:"elective3"`
	Elective4 any    `mapstructure:"elective4"`
	Elective5 any    `mapstructure:"elective5"`
	Elective6 any    `mapstructure:"elective6"`
}

type RawSection struct {
	CourseId    string `mapstructure:"class_id"`
	Number      string `mapstructure:"section"`
	Crn         int    `mapstructure:"crn"`
	Professor   string `mapstructure:"professor"`
	MeetingTime string `mapstructure:"meeting_time"`
	Room        string `mapstructure:"room"`
}

type RawCatalog struct {
	Courses  []RawCourse  `mapstructure:"courses"`
	Majors   []RawMajor   `mapstructure:"majors"`
	Sections []RawSection `mapstructure:"sections"`
}

// InputFromFile loads a catalog document. The format is chosen by extension: ".json", ".yaml" or ".yml"
func InputFromFile(file string) (*Memory, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var document map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		err = json.Unmarshal(bytes, &document)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &document)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(file))
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse catalog file %v: %w", file, err)
	}

	return InputFromMap(document)
}

// InputFromMap decodes an already parsed catalog document
func InputFromMap(document map[string]any) (*Memory, error) {
	var rawCatalog RawCatalog
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rawCatalog,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(document); err != nil {
		return nil, fmt.Errorf("cannot decode catalog: %w", err)
	}
	return ProcessRawCatalog(rawCatalog)
}

// ProcessRawCatalog validates raw records and builds an in-memory catalog
func ProcessRawCatalog(rawCatalog RawCatalog) (*Memory, error) {
	courses := make([]Course, 0, len(rawCatalog.Courses))
	byId := make(map[string]Course, len(rawCatalog.Courses))
	for _, rawCourse := range rawCatalog.Courses {
		prerequisites, err := stringList(rawCourse.Prerequisites)
		if err != nil {
			return nil, fmt.Errorf("course %q prereqs: %w", rawCourse.Id, err)
		}
		designations, err := stringList(rawCourse.Designations)
		if err != nil {
			return nil, fmt.Errorf("course %q requirement_designation: %w", rawCourse.Id, err)
		}

		course, err := NewCourse(
			rawCourse.Id,
			rawCourse.Name,
			rawCourse.CreditHours,
			Offering(rawCourse.Recurring),
			strings.Join(prerequisites, ";"),
			designations,
			rawCourse.Campus,
		)
		if err != nil {
			return nil, err
		}
		course = course.WithDescription(rawCourse.Description)

		courses = append(courses, course)
		byId[course.Id] = course
	}

	majors := make([]MajorRequirement, 0, len(rawCatalog.Majors))
	for _, rawMajor := range rawCatalog.Majors {
		required, err := courseRefs(rawMajor.Required)
		if err != nil {
			return nil, fmt.Errorf("major %q required_classes: %w", rawMajor.Name, err)
		}

		electives := make([][]CourseRef, 0, MaxElectiveGroups)
		for i, rawGroup := range []any{rawMajor.Elective1, rawMajor.Elective2, rawMajor.Elective3, rawMajor.Elective4, rawMajor.Elective5, rawMajor.Elective6} {
			group, err := courseRefs(rawGroup)
			if err != nil {
				return nil, fmt.Errorf("major %q elective%v: %w", rawMajor.Name, i+1, err)
			}
			if len(group) > 0 {
				electives = append(electives, group)
			}
		}

		major, err := NewMajorRequirement(rawMajor.Name, required, electives)
		if err != nil {
			return nil, err
		}
		majors = append(majors, major)
	}

	sections := make([]Section, 0, len(rawCatalog.Sections))
	for _, rawSection := range rawCatalog.Sections {
		course, ok := byId[strings.TrimSpace(rawSection.CourseId)]
		if !ok {
			return nil, fmt.Errorf("section %v references unknown course %q", rawSection.Number, rawSection.CourseId)
		}
		sections = append(sections, Section{
			Course:      course,
			Number:      rawSection.Number,
			Crn:         rawSection.Crn,
			Professor:   rawSection.Professor,
			MeetingTime: strings.TrimSpace(rawSection.MeetingTime),
			Room:        rawSection.Room,
		})
	}

	return NewMemory(courses, majors, sections)
}

func stringList(value any) ([]string, error) {
	switch value := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{value}, nil
	case []string:
		return value, nil
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string but found %T", item)
			}
			list = append(list, str)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("expected a string or a list of strings but found %T", value)
	}
}

// courseRefs accepts "A; B or C", a list of such strings, or a list whose items are alternative lists
func courseRefs(value any) ([]CourseRef, error) {
	switch value := value.(type) {
	case nil:
		return nil, nil
	case string:
		return ParseCourseRefs(value), nil
	case []any:
		refs := make([]CourseRef, 0, len(value))
		for _, item := range value {
			switch item := item.(type) {
			case string:
				refs = append(refs, ParseCourseRefs(item)...)
			case []any:
				alternatives, err := stringList(item)
				if err != nil {
					return nil, err
				}
				refs = append(refs, ParseCourseRefs(strings.Join(alternatives, " or "))...)
			default:
				return nil, fmt.Errorf("unexpected course reference of type %T", item)
			}
		}
		return refs, nil
	default:
		return nil, fmt.Errorf("expected a string or a list but found %T", value)
	}
}
