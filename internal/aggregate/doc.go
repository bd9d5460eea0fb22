// Package aggregate provides the concrete accumulators used by the
// experiments: a Bernoulli mean over boolean outcomes, a streaming
// mean-variance over scalar outcomes, and a categorical counter.
//
// Every accumulator is single-owner until it is handed back to the engine;
// none of them are safe for concurrent use.
package aggregate
