package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	semesterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	courseStyle   = lipgloss.NewStyle().PaddingLeft(2)
	creditStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	failureStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#999999")).Padding(0, 1)
)

// Render formats a plan for the terminal
func Render(result model.Result) string {
	blocks := []string{titleStyle.Render(fmt.Sprintf("%v: %v", result.Major, result.Status))}

	switch result.Status {
	case model.StatusMajorNotFound:
		blocks = append(blocks, failureStyle.Render("The major is not in the catalog"))
	case model.StatusInfeasible:
		message := "No schedule satisfies the constraints"
		if result.Stats.Exhausted {
			message += " within the search bounds"
		}
		blocks = append(blocks, failureStyle.Render(message))
	default:
		for _, semester := range result.Semesters {
			blocks = append(blocks, renderSemester(semester))
		}
	}

	if len(result.Warnings) > 0 {
		lines := make([]string, 0, len(result.Warnings))
		for _, warning := range result.Warnings {
			lines = append(lines, warningStyle.Render("! "+warning.String()))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	blocks = append(blocks, creditStyle.Render(fmt.Sprintf(
		"nodes expanded: %v, catalog lookups: %v", result.Stats.NodesExpanded, result.Stats.CatalogLookups,
	)))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderSemester(semester model.SemesterSchedule) string {
	lines := []string{semesterStyle.Render(fmt.Sprintf("%v %v", semester.Term, semester.Year)) + " " +
		creditStyle.Render(fmt.Sprintf("(%v credits)", semester.TotalCreditHours()))}
	if len(semester.Courses) == 0 {
		lines = append(lines, courseStyle.Render("-"))
	}
	for _, course := range semester.Courses {
		lines = append(lines, courseStyle.Render(fmt.Sprintf("%-10v %v", course.Id, course.Name))+" "+
			creditStyle.Render(fmt.Sprintf("%v cr", course.CreditHours)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderNext formats a registration proposal with its sections
func RenderNext(result model.NextSemesterResult) string {
	if result.Plan.Status != model.StatusFound {
		return Render(result.Plan)
	}

	lines := []string{semesterStyle.Render(fmt.Sprintf("%v %v", result.Semester.Term, result.Semester.Year)) + " " +
		creditStyle.Render(fmt.Sprintf("(%v credits)", result.Semester.TotalCreditHours()))}
	for _, section := range result.Sections {
		lines = append(lines, courseStyle.Render(renderSection(section)))
	}

	blocks := []string{titleStyle.Render(fmt.Sprintf("%v: next semester", result.Plan.Major)), boxStyle.Render(strings.Join(lines, "\n"))}
	if len(result.Leftover) > 0 {
		blocks = append(blocks, creditStyle.Render("later: "+strings.Join(result.Leftover, ", ")))
	}
	if result.Stats.Exhausted {
		blocks = append(blocks, warningStyle.Render("! section search stopped at its node bound"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderSection(section catalog.Section) string {
	details := make([]string, 0, 4)
	if section.Number != "" {
		details = append(details, "section "+section.Number)
	}
	if section.Crn != 0 {
		details = append(details, fmt.Sprintf("CRN %v", section.Crn))
	}
	if section.MeetingTime != "" {
		details = append(details, section.MeetingTime)
	}
	if section.Professor != "" {
		details = append(details, section.Professor)
	}

	line := fmt.Sprintf("%-10v %v", section.Course.Id, section.Course.Name)
	if len(details) > 0 {
		line += " " + creditStyle.Render("["+strings.Join(details, ", ")+"]")
	}
	return line
}
