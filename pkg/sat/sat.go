package sat

import (
	"fmt"
	"strings"
)

// SATSolution lists one signed literal per assigned variable
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Positives returns the set of variables assigned true by the solution
func (solution SATSolution) Positives() map[uint64]bool {
	positives := make(map[uint64]bool)
	for _, literal := range solution {
		if literal > 0 {
			positives[uint64(literal)] = true
		}
	}
	return positives
}
