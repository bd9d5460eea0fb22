// Package experiment contains the trial producers shipped with mcsim.
//
// Each constructor validates its parameters and returns a value that
// implements simulation.Producer for the outcome type of the experiment.
// Producers hold only immutable configuration and are safe to share
// between workers.
package experiment
