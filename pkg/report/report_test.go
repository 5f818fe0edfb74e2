package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) model.Result {
	t.Helper()
	math111, err := catalog.NewCourse("MATH111", "Calculus I", 3, catalog.OfferingAny, "", []string{"Quantitative Reasoning"}, "Atlanta")
	require.Nil(t, err)
	cs170, err := catalog.NewCourse("CS170", "Introduction to Computer Science I", 4, catalog.OfferingFallSpring, "MATH111", nil, "Atlanta")
	require.Nil(t, err)

	return model.Result{
		Status: model.StatusFound,
		Major:  "Computer Science BS",
		Semesters: []model.SemesterSchedule{
			{Year: 2024, Term: model.Fall, Courses: []catalog.Course{math111}},
			{Year: 2025, Term: model.Spring, Courses: []catalog.Course{cs170}},
		},
		Warnings: []model.Warning{{Kind: model.WarningNotFound, Course: "CS999", Message: "required course is not in the catalog"}},
		Stats:    model.Stats{NodesExpanded: 3, CatalogLookups: 5},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat(" XLSX ")
	require.Nil(t, err)
	assert.Equal(t, FormatXLSX, format)

	_, err = ParseFormat("pdf")
	assert.NotNil(t, err)
}

func TestJSON(t *testing.T) {
	//** Arrange
	var buffer bytes.Buffer

	//** Act
	err := Write(&buffer, FormatJSON, sampleResult(t))

	//** Assert
	require.Nil(t, err)
	var document map[string]any
	require.Nil(t, json.Unmarshal(buffer.Bytes(), &document))
	assert.Equal(t, "found", document["status"])

	semesters := document["semesters"].([]any)
	require.Len(t, semesters, 2)
	first := semesters[0].(map[string]any)
	assert.Equal(t, float64(2024), first["year"])
	assert.Equal(t, "Fall", first["semester"])
	assert.Equal(t, float64(3), first["total_credit_hours"])
	class := first["classes"].([]any)[0].(map[string]any)
	assert.Equal(t, "MATH111", class["class_id"])
	assert.Equal(t, []any{"Quantitative Reasoning"}, class["requirement_designation"])
}

func TestYAML(t *testing.T) {
	var buffer bytes.Buffer

	require.Nil(t, Write(&buffer, FormatYAML, sampleResult(t)))

	var document Document
	require.Nil(t, yaml.Unmarshal(buffer.Bytes(), &document))
	assert.Equal(t, NewDocument(sampleResult(t)), document)
}

func TestReadDocument(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			//** Arrange
			var buffer bytes.Buffer
			require.Nil(t, Write(&buffer, format, sampleResult(t)))

			//** Act
			document, err := ReadDocument(&buffer, format)

			//** Assert
			require.Nil(t, err)
			assert.Equal(t, NewDocument(sampleResult(t)), document)
		})
	}

	t.Run("Unsupported format", func(t *testing.T) {
		_, err := ReadDocument(bytes.NewReader(nil), FormatCSV)
		assert.NotNil(t, err)
	})
}

func TestCSV(t *testing.T) {
	var buffer bytes.Buffer

	require.Nil(t, Write(&buffer, FormatCSV, sampleResult(t)))

	var rows []CsvCourse
	require.Nil(t, gocsv.UnmarshalBytes(buffer.Bytes(), &rows))
	assert.Equal(t, []CsvCourse{
		{Semester: 1, Term: "Fall", Year: 2024, Id: "MATH111", Name: "Calculus I", CreditHours: 3, Designations: "Quantitative Reasoning"},
		{Semester: 2, Term: "Spring", Year: 2025, Id: "CS170", Name: "Introduction to Computer Science I", CreditHours: 4, Recurring: "fall/spring", Prerequisites: "MATH111"},
	}, rows)
}

func TestXLSX(t *testing.T) {
	var buffer bytes.Buffer

	require.Nil(t, Write(&buffer, FormatXLSX, sampleResult(t)))

	f, err := excelize.OpenReader(&buffer)
	require.Nil(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.Nil(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, xlsxHeader, rows[0])
	assert.Equal(t, []string{"Fall 2024", "MATH111", "Calculus I", "3", "", "", "Quantitative Reasoning"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 4)
	assert.Equal(t, []string{"Fall 2024", "Total", "", "3"}, rows[2][:4])
	assert.Equal(t, "CS170", rows[3][1])
}

func TestRender(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		output := Render(sampleResult(t))

		assert.Contains(t, output, "Computer Science BS: found")
		assert.Contains(t, output, "Fall 2024")
		assert.Contains(t, output, "Spring 2025")
		assert.Contains(t, output, "CS170")
		assert.Contains(t, output, "not_found: CS999")
	})

	t.Run("Infeasible", func(t *testing.T) {
		output := Render(model.Result{Status: model.StatusInfeasible, Major: "Computer Science BS", Stats: model.Stats{Exhausted: true}})

		assert.Contains(t, output, "within the search bounds")
	})

	t.Run("Next semester", func(t *testing.T) {
		result := sampleResult(t)
		output := RenderNext(model.NextSemesterResult{
			Plan:     result,
			Semester: result.Semesters[0],
			Sections: []catalog.Section{{Course: result.Semesters[0].Courses[0], Number: "2", Crn: 1001, MeetingTime: "MW 10:00"}},
			Leftover: []string{"CS170"},
		})

		assert.Contains(t, output, "CRN 1001")
		assert.Contains(t, output, "MW 10:00")
		assert.Contains(t, output, "later: CS170")
	})
}

func TestWriteNext(t *testing.T) {
	result := sampleResult(t)
	next := model.NextSemesterResult{
		Plan:     result,
		Semester: result.Semesters[0],
		Sections: []catalog.Section{{Course: result.Semesters[0].Courses[0], Number: "2", Crn: 1001, MeetingTime: "MW 10:00"}},
		Leftover: []string{"CS170"},
		Stats:    model.Stats{NodesExpanded: 2},
	}

	t.Run("JSON", func(t *testing.T) {
		var buffer bytes.Buffer

		require.Nil(t, WriteNext(&buffer, FormatJSON, next))

		var document NextDocument
		require.Nil(t, json.Unmarshal(buffer.Bytes(), &document))
		assert.Equal(t, model.StatusFound, document.Status)
		assert.Equal(t, []SectionRecord{{Course: "MATH111", Number: "2", Crn: 1001, MeetingTime: "MW 10:00"}}, document.Sections)
		assert.Equal(t, []string{"CS170"}, document.Leftover)
		assert.Equal(t, 3, document.Semester.TotalCreditHours)
		assert.Equal(t, 2, document.Stats.NodesExpanded)
	})

	t.Run("Unsupported format", func(t *testing.T) {
		assert.NotNil(t, WriteNext(&bytes.Buffer{}, FormatXLSX, next))
	})
}
