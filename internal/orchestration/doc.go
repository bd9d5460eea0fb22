// Package orchestration turns the configuration into experiment jobs, runs
// one or several of them concurrently on the simulation engine, and hands
// the results to the presentation layer through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
