package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
)

const (
	executablePath           = "../../bin/degreeplan"
	catalogDirectory         = "../../pkg/catalog/testdata/"
	resultsFile              = "benchmark_results.csv"
	MB               float32 = 1024 * 1024
)

type PlannerType int

const (
	backtracking PlannerType = iota
	gophersat
	kissat
	cadical
	minisat
)

type ResultType int

const (
	found ResultType = iota
	infeasible
)

var (
	// Strategy and solver handed to the CLI for each planner
	plannerTypes = map[PlannerType][2]string{
		backtracking: {"backtracking", "gophersat"},
		gophersat:    {"sat", "gophersat"},
		kissat:       {"sat", "kissat"},
		cadical:      {"sat", "cadical"},
		minisat:      {"sat", "minisat"},
	}
	resultTypes = map[ResultType]string{
		found:      "found",
		infeasible: "infeasible",
	}
)

type TestMetadata struct {
	Catalog  string
	Major    string
	Courses  int
	Majors   int
	Sections int
}

type BenchmarkResult struct {
	Planner       PlannerType
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

// BenchmarkRow is one line of the results file
type BenchmarkRow struct {
	Strategy      string  `csv:"strategy"`
	Solver        string  `csv:"solver"`
	Catalog       string  `csv:"catalog"`
	Major         string  `csv:"major"`
	Courses       int     `csv:"courses"`
	Majors        int     `csv:"majors"`
	Sections      int     `csv:"sections"`
	Duration      int64   `csv:"duration_ms"`
	Memory        float32 `csv:"memory_mb"`
	CpuPercentage int64   `csv:"cpu_percent"`
	Result        string  `csv:"result"`
}

func main() {
	tests := getTests()
	planners := getPlanners()
	results := make([]BenchmarkResult, 0, len(tests)*len(planners))

	for _, test := range tests {
		for _, planner := range planners {
			fmt.Printf("Benchmarking major \"%v\" of \"%v\" with strategy \"%v\" and solver \"%v\"\n", test.Major, test.Catalog, plannerTypes[planner][0], plannerTypes[planner][1])

			duration, maxMemory, cpuPercentage, result := measure(planner, test)

			results = append(results, BenchmarkResult{
				Planner:       planner,
				Test:          test,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	files, err := os.ReadDir(catalogDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range files {
		filename := filepath.Join(catalogDirectory, file.Name())
		memory, err := catalog.InputFromFile(filename)
		if err != nil {
			log.Fatalf("cannot parse catalog file: %v", err)
		}

		for _, major := range memory.Majors() {
			tests = append(tests, TestMetadata{
				Catalog:  filename,
				Major:    major.Name,
				Courses:  len(memory.Courses()),
				Majors:   len(memory.Majors()),
				Sections: len(memory.Sections()),
			})
		}
	}
	return tests
}

func getPlanners() []PlannerType {
	return []PlannerType{backtracking, gophersat, kissat, cadical, minisat}
}

func measure(planner PlannerType, test TestMetadata) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "plan", "--major", test.Major, "--format", "json", "--out", os.DevNull)
	cmd.Env = append(os.Environ(),
		"DEGREEPLAN_CATALOG_SOURCE=file",
		"DEGREEPLAN_CATALOG_FILE="+test.Catalog,
		"DEGREEPLAN_ENGINE_STRATEGY="+plannerTypes[planner][0],
		"DEGREEPLAN_ENGINE_SOLVER="+plannerTypes[planner][1],
		"DEGREEPLAN_LOG_LEVEL=error",
	)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution of \"degreeplan\" at major \"%v\" of \"%v\" using strategy \"%v\", solver \"%v\": %v\n", test.Major, test.Catalog, plannerTypes[planner][0], plannerTypes[planner][1], stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = infeasible
	} else {
		result = found
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toRows(results []BenchmarkResult) []BenchmarkRow {
	return lo.Map(results, func(result BenchmarkResult, _ int) BenchmarkRow {
		return BenchmarkRow{
			Strategy:      plannerTypes[result.Planner][0],
			Solver:        plannerTypes[result.Planner][1],
			Catalog:       result.Test.Catalog,
			Major:         result.Test.Major,
			Courses:       result.Test.Courses,
			Majors:        result.Test.Majors,
			Sections:      result.Test.Sections,
			Duration:      result.Duration,
			Memory:        result.Memory,
			CpuPercentage: result.CpuPercentage,
			Result:        resultTypes[result.Result],
		}
	})
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	rows := toRows(results)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// parseMemoryLine converts the resident set size reported in KB to MB
func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) * 1024 / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
