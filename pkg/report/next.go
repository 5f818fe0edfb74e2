package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type SectionRecord struct {
	Course      string `json:"class_id" yaml:"class_id"`
	Number      string `json:"section,omitempty" yaml:"section,omitempty"`
	Crn         int    `json:"crn,omitempty" yaml:"crn,omitempty"`
	Professor   string `json:"professor,omitempty" yaml:"professor,omitempty"`
	MeetingTime string `json:"meeting_time,omitempty" yaml:"meeting_time,omitempty"`
	Room        string `json:"room,omitempty" yaml:"room,omitempty"`
}

// NextDocument is the serialized form of a registration proposal
type NextDocument struct {
	Status   model.Status         `json:"status" yaml:"status"`
	Major    string               `json:"major" yaml:"major"`
	Semester model.SemesterRecord `json:"semester" yaml:"semester"`
	Sections []SectionRecord      `json:"sections" yaml:"sections"`
	Leftover []string             `json:"later" yaml:"later"`
	Warnings []model.Warning      `json:"warnings" yaml:"warnings"`
	Stats    model.Stats          `json:"stats" yaml:"stats"`
}

func NewNextDocument(result model.NextSemesterResult) NextDocument {
	plan := NewDocument(result.Plan)
	leftover := result.Leftover
	if leftover == nil {
		leftover = []string{}
	}
	return NextDocument{
		Status:   plan.Status,
		Major:    plan.Major,
		Semester: result.Semester.Record(),
		Sections: lo.Map(result.Sections, func(section catalog.Section, _ int) SectionRecord {
			return SectionRecord{
				Course:      section.Course.Id,
				Number:      section.Number,
				Crn:         section.Crn,
				Professor:   section.Professor,
				MeetingTime: section.MeetingTime,
				Room:        section.Room,
			}
		}),
		Leftover: leftover,
		Warnings: plan.Warnings,
		Stats:    result.Stats,
	}
}

// WriteNext renders a registration proposal as text, json or yaml
func WriteNext(w io.Writer, format Format, result model.NextSemesterResult) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, RenderNext(result)+"\n")
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(NewNextDocument(result))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewNextDocument(result)); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("next semester proposals cannot be written as %v", format)
	}
}
