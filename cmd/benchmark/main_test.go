package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("00:01:01.12"))
	assert.Equal(t, int64(60*60*1000+60*1000+1000+120), parseDuration("01:01:01.12"))
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("1:01.12"))
	assert.Equal(t, int64(120), parseDuration("0:00.12"))
	assert.Equal(t, int64(120), parseDuration("00:00:00.12"))
}

func TestParseTimeLines(t *testing.T) {
	assert.Equal(t, int64(1500), parseDurationLine("\tElapsed (wall clock) time (h:mm:ss or m:ss): 0:01.50"))
	assert.Equal(t, float32(2), parseMemoryLine("\tMaximum resident set size (kbytes): 2048"))
	assert.Equal(t, int64(97), parseCpuPercentageLine("\tPercent of CPU this job got: 97%"))
}

func TestToRows(t *testing.T) {
	results := []BenchmarkResult{{
		Planner:  cadical,
		Test:     TestMetadata{Catalog: "catalog.json", Major: "Computer Science BS", Courses: 12, Majors: 2},
		Duration: 1500,
		Result:   infeasible,
	}}

	rows := toRows(results)

	assert.Equal(t, []BenchmarkRow{{
		Strategy: "sat",
		Solver:   "cadical",
		Catalog:  "catalog.json",
		Major:    "Computer Science BS",
		Courses:  12,
		Majors:   2,
		Duration: 1500,
		Result:   "infeasible",
	}}, rows)
}
