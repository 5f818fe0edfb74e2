package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Plan"

var xlsxHeader = []string{"Semester", "Course", "Name", "Credits", "Offered", "Prerequisites", "Designations"}

// WriteXLSX writes a workbook with one block per semester followed by its credit total
func WriteXLSX(w io.Writer, result model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	//** Layout
	widths := map[string]float64{"A": 14, "B": 12, "C": 36, "D": 8, "E": 14, "F": 28, "G": 36}
	for column, width := range widths {
		if err := f.SetColWidth(sheetName, column, column, width); err != nil {
			return err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	//** Header
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", cell("G", 1), headerStyle); err != nil {
		return err
	}

	//** Semesters
	row := 2
	for _, semester := range result.Semesters {
		label := fmt.Sprintf("%v %v", semester.Term, semester.Year)
		for _, course := range semester.Courses {
			values := []any{label, course.Id, course.Name, course.CreditHours, string(course.Offering), course.Prerequisites, strings.Join(course.Designations, "; ")}
			if err := f.SetSheetRow(sheetName, cell("A", row), &values); err != nil {
				return err
			}
			row++
		}

		total := []any{label, "Total", "", semester.TotalCreditHours()}
		if err := f.SetSheetRow(sheetName, cell("A", row), &total); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell("A", row), cell("G", row), totalStyle); err != nil {
			return err
		}
		row++
	}

	return f.Write(w)
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}
