package perplex

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary describes a whole profile. Positions count from 1.
type Summary struct {
	Mean         float64
	Median       float64
	Min          float64
	Max          float64
	MostVariable []int // highest perplexity first, ties in position order
}

// Summarize returns summary statistics and the nTop most variable
// positions.
func Summarize(p Profile, nTop int) (Summary, error) {
	var s Summary
	if len(p) == 0 {
		return s, ErrNoInput
	}
	data := stats.Float64Data(p)
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}

	ndx := make([]int, len(p))
	for i := range ndx {
		ndx[i] = i
	}
	sort.SliceStable(ndx, func(i, j int) bool { return p[ndx[i]] > p[ndx[j]] })
	if nTop > len(ndx) {
		nTop = len(ndx)
	}
	for _, i := range ndx[:max(nTop, 0)] {
		s.MostVariable = append(s.MostVariable, i+1)
	}
	return s, nil
}

// String is the one line form printed by the command line tools.
func (s Summary) String() string {
	return fmt.Sprintf("mean %.4g median %.4g min %.4g max %.4g most variable %v",
		s.Mean, s.Median, s.Min, s.Max, s.MostVariable)
}
