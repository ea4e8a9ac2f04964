package training

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/cluster"
	"github.com/okian/scout/internal/domain/feature"
	"github.com/okian/scout/internal/domain/vector"
)

// maxSamplePlayers caps the example names kept per cluster in the report.
const maxSamplePlayers = 5

// ClusterSummary describes one fitted cluster for reporting.
type ClusterSummary struct {
	ClusterID   int
	Archetype   string
	Description string
	Count       int
	MeanProfile vector.Vector
	Samples     []string
}

// Report summarizes a completed training run.
type Report struct {
	RunID    string
	Seed     int64
	Players  int
	Skipped  int
	Inertia  float64
	Elapsed  time.Duration
	Clusters []ClusterSummary
}

func buildReport(artifacts repository.Artifacts, model *cluster.Model, raw []vector.Vector, skipped int, elapsed time.Duration) (*Report, error) {
	dims := feature.Count()
	sums := make([]vector.Vector, model.K())
	counts := make([]int, model.K())
	samples := make([][]string, model.K())
	for i := range sums {
		sums[i] = make(vector.Vector, dims)
	}

	for i, p := range artifacts.Corpus {
		id, err := model.Predict(p.Vector)
		if err != nil {
			return nil, fmt.Errorf("assign %q to a cluster: %w", p.Name, err)
		}
		counts[id]++
		// Report per-dimension means in raw attribute space so the numbers
		// read as 0-100 skill ratings rather than z-scores.
		for d, v := range raw[i] {
			sums[id][d] += v
		}
		if len(samples[id]) < maxSamplePlayers {
			samples[id] = append(samples[id], p.Name)
		}
	}

	summaries := make([]ClusterSummary, 0, model.K())
	for _, entry := range artifacts.Archetypes {
		mean := make(vector.Vector, dims)
		if n := counts[entry.ClusterID]; n > 0 {
			for d := range mean {
				mean[d] = sums[entry.ClusterID][d] / float64(n)
			}
		}
		summaries = append(summaries, ClusterSummary{
			ClusterID:   entry.ClusterID,
			Archetype:   entry.Name,
			Description: entry.Description,
			Count:       counts[entry.ClusterID],
			MeanProfile: mean,
			Samples:     samples[entry.ClusterID],
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ClusterID < summaries[j].ClusterID })

	return &Report{
		RunID:    artifacts.RunID,
		Seed:     artifacts.Seed,
		Players:  len(artifacts.Corpus),
		Skipped:  skipped,
		Inertia:  model.Inertia(),
		Elapsed:  elapsed,
		Clusters: summaries,
	}, nil
}
