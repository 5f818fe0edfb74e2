package model

import (
	"fmt"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/catalog"
)

// Term is the label of a planning slot
type Term int

const (
	Fall Term = iota
	Spring
)

func ParseTerm(raw string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fall":
		return Fall, nil
	case "spring":
		return Spring, nil
	default:
		return Fall, fmt.Errorf("unknown term %q: expected Fall or Spring", raw)
	}
}

func (term Term) String() string {
	if term == Spring {
		return "Spring"
	}
	return "Fall"
}

func (term Term) MarshalText() ([]byte, error) {
	return []byte(term.String()), nil
}

func (term *Term) UnmarshalText(text []byte) error {
	parsed, err := ParseTerm(string(text))
	if err != nil {
		return err
	}
	*term = parsed
	return nil
}

// Next returns the term that follows
func (term Term) Next() Term {
	if term == Fall {
		return Spring
	}
	return Fall
}

// TermOf returns the label of the 1-indexed slot when slot 1 is the start term and terms alternate
func TermOf(index int, start Term) Term {
	if (index-1)%2 == 0 {
		return start
	}
	return start.Next()
}

// YearOf returns the calendar year of the 1-indexed slot. The year increments when moving from a Fall slot to the next one
func YearOf(index, startYear int, start Term) int {
	if start == Fall {
		return startYear + index/2
	}
	return startYear + (index-1)/2
}

// offeringAllows reports whether a course with the offering may be scheduled in the term. Only fall and spring are exclusive
func offeringAllows(offering catalog.Offering, term Term) bool {
	switch {
	case offering.FallOnly():
		return term == Fall
	case offering.SpringOnly():
		return term == Spring
	default:
		return true
	}
}
