package train

import (
	"fmt"
	"strings"
)

// reportPairs is the number of prediction/target pairs carried by a Report.
const reportPairs = 5

// Pair is one prediction next to its target.
type Pair struct {
	Prediction float64
	Target     float64
}

// Report describes training progress at one epoch.
type Report struct {
	Iteration   int     // Epoch index within the current run
	TotalEpochs int     // Epochs completed before this one, across runs
	Loss        float64 // Loss of this epoch, before the update
	Pairs       []Pair  // First samples' predictions and targets
}

// String formats the report as one progress line.
func (r Report) String() string {
	pairs := make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		pairs[i] = fmt.Sprintf("%.2f ~ %.2f", p.Prediction, p.Target)
	}
	return fmt.Sprintf("Iteration: %5d | Loss: %8.5f | Prediction: %s",
		r.Iteration, r.Loss, strings.Join(pairs, " | "))
}

// Reporter receives progress reports.
type Reporter func(Report)
