package model

import (
	"testing"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func TestTermOf(t *testing.T) {
	cases := []struct {
		index    int
		start    Term
		expected Term
	}{
		{1, Fall, Fall},
		{2, Fall, Spring},
		{3, Fall, Fall},
		{8, Fall, Spring},
		{1, Spring, Spring},
		{2, Spring, Fall},
		{7, Spring, Spring},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, TermOf(c.index, c.start), "slot %v starting %v", c.index, c.start)
	}
}

func TestYearOf(t *testing.T) {
	t.Run("Starting in Fall", func(t *testing.T) {
		years := []int{}
		for index := 1; index <= 5; index++ {
			years = append(years, YearOf(index, 2024, Fall))
		}
		assert.Equal(t, []int{2024, 2025, 2025, 2026, 2026}, years)
	})

	t.Run("Starting in Spring", func(t *testing.T) {
		years := []int{}
		for index := 1; index <= 5; index++ {
			years = append(years, YearOf(index, 2025, Spring))
		}
		assert.Equal(t, []int{2025, 2025, 2026, 2026, 2027}, years)
	})
}

func TestParseTerm(t *testing.T) {
	term, err := ParseTerm(" spring ")
	assert.Nil(t, err)
	assert.Equal(t, Spring, term)

	_, err = ParseTerm("summer")
	assert.NotNil(t, err)

	text, err := Fall.MarshalText()
	assert.Nil(t, err)
	assert.Equal(t, "Fall", string(text))
}

func TestOfferingAllows(t *testing.T) {
	assert.True(t, offeringAllows(catalog.OfferingFall, Fall))
	assert.False(t, offeringAllows(catalog.OfferingFall, Spring))
	assert.True(t, offeringAllows(catalog.OfferingSpring, Spring))
	assert.False(t, offeringAllows(catalog.OfferingSpring, Fall))

	for _, offering := range []catalog.Offering{catalog.OfferingAny, catalog.OfferingFallSpring, catalog.OfferingSummer, catalog.OfferingAll} {
		assert.True(t, offeringAllows(offering, Fall))
		assert.True(t, offeringAllows(offering, Spring))
	}
}
