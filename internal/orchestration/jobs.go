package orchestration

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/agbru/mcsim/internal/aggregate"
	"github.com/agbru/mcsim/internal/config"
	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/experiment"
	"github.com/agbru/mcsim/internal/fasta"
	"github.com/agbru/mcsim/internal/simulation"
)

// Job is one configured experiment, ready to run on the engine.
type Job struct {
	Name        string
	Description string
	Run         func(ctx context.Context, opts simulation.Options) (Summary, error)
}

type jobBuilder func(cfg config.AppConfig) (Job, error)

var builders = map[string]jobBuilder{
	"artificiality": artificialityJob,
	"birthday":      birthdayJob,
	"coin":          coinJob,
	"mutation":      mutationJob,
	"pi":            piJob,
}

// ExperimentNames returns the registered experiment names in sorted order.
func ExperimentNames() []string {
	return slices.Sorted(maps.Keys(builders))
}

// BuildJobs returns the jobs selected by cfg.Experiment. "all" selects every
// runnable experiment, in sorted order; the mutation experiment is only
// runnable when a FASTA file is configured.
//
// Parameters:
//   - cfg: The application configuration.
//
// Returns:
//   - []Job: The jobs to execute.
//   - error: A ConfigError from an experiment constructor, or a FASTA
//     loading error.
func BuildJobs(cfg config.AppConfig) ([]Job, error) {
	names := []string{cfg.Experiment}
	if cfg.Experiment == config.ExperimentAll {
		names = names[:0]
		for _, name := range ExperimentNames() {
			if name == "mutation" && cfg.FASTA == "" {
				continue
			}
			names = append(names, name)
		}
	}
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		build, ok := builders[name]
		if !ok {
			return nil, apperrors.NewConfigError("unknown experiment %q", name)
		}
		job, err := build(cfg)
		if err != nil {
			return nil, apperrors.WrapError(err, "%s", name)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func coinJob(cfg config.AppConfig) (Job, error) {
	coin, err := experiment.NewCoinFlip(cfg.Bias)
	if err != nil {
		return Job{}, err
	}
	return Job{
		Name:        "coin",
		Description: fmt.Sprintf("Coin flip (bias %g)", coin.Bias()),
		Run: func(ctx context.Context, opts simulation.Options) (Summary, error) {
			res, err := simulation.Execute[bool](ctx, coin, aggregate.NewBooleanMean, opts)
			if err != nil {
				return Summary{}, err
			}
			s, err := scalarSummary(res, cfg.Confidence)
			if err != nil {
				return Summary{}, err
			}
			s.Derived = []Derived{
				{Label: "Heads", Value: res.Summary.Mean, Kind: KindPercent, Interval: ptr(s.Interval)},
				{Label: "Tails", Value: 1 - res.Summary.Mean, Kind: KindPercent},
				{Label: "Expected heads", Value: coin.Bias(), Kind: KindPercent},
			}
			return s, nil
		},
	}, nil
}

func piJob(cfg config.AppConfig) (Job, error) {
	return Job{
		Name:        "pi",
		Description: "π estimation (quarter circle)",
		Run: func(ctx context.Context, opts simulation.Options) (Summary, error) {
			res, err := simulation.Execute[float64](ctx, experiment.PiEstimation{}, aggregate.NewMeanVariance, opts)
			if err != nil {
				return Summary{}, err
			}
			s, err := scalarSummary(res, cfg.Confidence)
			if err != nil {
				return Summary{}, err
			}
			pi := experiment.PiScale * res.Summary.Mean
			scaled := s.Interval.Scale(experiment.PiScale)
			s.Derived = []Derived{
				{Label: "π estimate", Value: pi, Interval: ptr(scaled)},
				{Label: "Absolute error", Value: math.Abs(pi - math.Pi)},
			}
			return s, nil
		},
	}, nil
}

func birthdayJob(cfg config.AppConfig) (Job, error) {
	b, err := experiment.NewBirthday(cfg.Group, cfg.Days)
	if err != nil {
		return Job{}, err
	}
	exact := experiment.BirthdayProbability(cfg.Group, cfg.Days)
	return Job{
		Name:        "birthday",
		Description: fmt.Sprintf("Birthday paradox (%d people, %d days)", cfg.Group, cfg.Days),
		Run: func(ctx context.Context, opts simulation.Options) (Summary, error) {
			res, err := simulation.Execute[float64](ctx, b, aggregate.NewMeanVariance, opts)
			if err != nil {
				return Summary{}, err
			}
			s, err := scalarSummary(res, cfg.Confidence)
			if err != nil {
				return Summary{}, err
			}
			s.Derived = []Derived{
				{Label: "Shared birthday", Value: res.Summary.Mean, Kind: KindPercent, Interval: ptr(s.Interval)},
				{Label: "Closed form", Value: exact, Kind: KindPercent},
				{Label: "Difference", Value: res.Summary.Mean - exact},
			}
			return s, nil
		},
	}, nil
}

func mutationJob(cfg config.AppConfig) (Job, error) {
	rna, err := fasta.LoadRNA(cfg.FASTA)
	if err != nil {
		return Job{}, err
	}
	m, err := experiment.NewSpikeMutation(rna)
	if err != nil {
		return Job{}, err
	}
	return Job{
		Name:        "mutation",
		Description: fmt.Sprintf("Point mutations (%d codons)", m.Codons()),
		Run: func(ctx context.Context, opts simulation.Options) (Summary, error) {
			res, err := simulation.Execute[experiment.MutationType](ctx, m, aggregate.NewCounter[experiment.MutationType](), opts)
			if err != nil {
				return Summary{}, err
			}
			s := Summary{Samples: res.Samples, RunID: res.RunID, Elapsed: res.Elapsed}
			for _, kind := range experiment.MutationTypes {
				s.Derived = append(s.Derived, Derived{Label: kind.String(), Value: res.Summary.Fraction(kind), Kind: KindPercent})
			}
			return s, nil
		},
	}, nil
}

func artificialityJob(cfg config.AppConfig) (Job, error) {
	natural, err := experiment.SpectrumByName(cfg.Spectrum)
	if err != nil {
		return Job{}, err
	}
	a, err := experiment.NewArtificiality(natural)
	if err != nil {
		return Job{}, err
	}
	return Job{
		Name:        "artificiality",
		Description: fmt.Sprintf("Artificiality score (%s spectrum)", cfg.Spectrum),
		Run: func(ctx context.Context, opts simulation.Options) (Summary, error) {
			res, err := simulation.Execute[float64](ctx, a, aggregate.NewMeanVariance, opts)
			if err != nil {
				return Summary{}, err
			}
			s, err := scalarSummary(res, cfg.Confidence)
			if err != nil {
				return Summary{}, err
			}
			s.Derived = []Derived{{Label: "Score", Value: res.Summary.Mean, Interval: ptr(s.Interval)}}
			s.Verdict = "likely natural"
			if experiment.LikelyArtificial(res.Summary.Mean) {
				s.Verdict = "likely artificial"
			}
			return s, nil
		},
	}, nil
}

func ptr(iv simulation.Interval) *simulation.Interval { return &iv }
