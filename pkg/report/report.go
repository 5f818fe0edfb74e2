package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatXLSX}

func ParseFormat(raw string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(raw)))
	if !lo.Contains(Formats, format) {
		return "", fmt.Errorf("unknown report format %q: expected one of %v", raw, Formats)
	}
	return format, nil
}

// Document is the serialized form of a plan
type Document struct {
	Status    model.Status           `json:"status" yaml:"status"`
	Major     string                 `json:"major" yaml:"major"`
	Semesters []model.SemesterRecord `json:"semesters" yaml:"semesters"`
	Warnings  []model.Warning        `json:"warnings" yaml:"warnings"`
	Stats     model.Stats            `json:"stats" yaml:"stats"`
}

func NewDocument(result model.Result) Document {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []model.Warning{}
	}
	return Document{
		Status:    result.Status,
		Major:     result.Major,
		Semesters: lo.Map(result.Semesters, func(semester model.SemesterSchedule, _ int) model.SemesterRecord { return semester.Record() }),
		Warnings:  warnings,
		Stats:     result.Stats,
	}
}

// Write renders the plan in the given format
func Write(w io.Writer, format Format, result model.Result) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, Render(result)+"\n")
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(NewDocument(result))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewDocument(result)); err != nil {
			return err
		}
		return encoder.Close()
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatXLSX:
		return WriteXLSX(w, result)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// ReadDocument decodes a plan written in the JSON or YAML format
func ReadDocument(r io.Reader, format Format) (Document, error) {
	var document Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&document); err != nil {
			return Document{}, fmt.Errorf("cannot decode plan: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&document); err != nil {
			return Document{}, fmt.Errorf("cannot decode plan: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("plans can only be read from json or yaml, not %q", format)
	}
	return document, nil
}
