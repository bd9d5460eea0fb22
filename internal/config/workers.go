package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flag (-workers)
//   2. Environment variable (MCSIM_WORKERS)
//   3. Cached calibration profile (~/.mcsim_calibration.json)
//   4. Hardware default (this file)

// ApplyWorkerDefaults fills in the worker count when neither the flag nor
// the environment set it. profileWorkers is the calibrated count, or 0 when
// no usable profile exists.
func ApplyWorkerDefaults(cfg AppConfig, profileWorkers int) AppConfig {
	if cfg.Workers != 0 {
		return cfg
	}
	if profileWorkers > 0 {
		cfg.Workers = profileWorkers
		return cfg
	}
	cfg.Workers = EstimateWorkers()
	return cfg
}

// EstimateWorkers returns the hardware default: one worker per logical CPU
// available to the process.
func EstimateWorkers() int {
	return max(1, min(runtime.NumCPU(), runtime.GOMAXPROCS(0)))
}
