package main

import (
	"time"

	"github.com/limaJavier/degreeplan/internal/config"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/spf13/cobra"
)

// requestFlags are the planning flags shared by plan and next. Unset flags fall back to the plan section of the config
type requestFlags struct {
	major      string
	semesters  int
	minCredits int
	maxCredits int
	start      string
	startYear  int
	taken      []string
	additional []string
	excluded   []string
	ger        bool
}

func (flags *requestFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flags.major, "major", "m", "", "Name of the major to plan")
	f.IntVar(&flags.semesters, "semesters", 0, "Number of semesters to plan")
	f.IntVar(&flags.minCredits, "min-credits", 0, "Minimum credit hours per semester")
	f.IntVar(&flags.maxCredits, "max-credits", 0, "Maximum credit hours per semester")
	f.StringVar(&flags.start, "start", "", `Term of the first semester, "fall" or "spring"`)
	f.IntVar(&flags.startYear, "start-year", 0, "Calendar year of the first semester")
	f.StringSliceVar(&flags.taken, "taken", nil, "Completed courses, comma separated")
	f.StringSliceVar(&flags.additional, "add", nil, "Courses to schedule on top of the major, comma separated")
	f.StringSliceVar(&flags.excluded, "exclude", nil, "Elective candidates that must not be selected, comma separated")
	f.BoolVar(&flags.ger, "ger", false, "Fill the plan with general education requirements")
	_ = cmd.MarkFlagRequired("major")
}

func (flags *requestFlags) request(cmd *cobra.Command, defaults config.PlanConfig) (model.Request, error) {
	changed := cmd.Flags().Changed
	if changed("semesters") {
		defaults.Semesters = flags.semesters
	}
	if changed("min-credits") {
		defaults.MinCredits = flags.minCredits
	}
	if changed("max-credits") {
		defaults.MaxCredits = flags.maxCredits
	}
	if changed("start") {
		defaults.Start = flags.start
	}
	if changed("start-year") {
		defaults.StartYear = flags.startYear
	}
	if changed("ger") {
		defaults.IncludeGER = flags.ger
	}

	start, err := model.ParseTerm(defaults.Start)
	if err != nil {
		return model.Request{}, err
	}
	if defaults.StartYear == 0 {
		defaults.StartYear = time.Now().Year()
	}

	request := model.Request{
		Major:             flags.major,
		Semesters:         defaults.Semesters,
		MinCredits:        defaults.MinCredits,
		MaxCredits:        defaults.MaxCredits,
		Start:             start,
		StartYear:         defaults.StartYear,
		Taken:             flags.taken,
		Additional:        flags.additional,
		ExcludedElectives: flags.excluded,
		IncludeGER:        defaults.IncludeGER,
	}
	return request, request.Validate()
}
