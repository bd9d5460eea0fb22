// Package apperrors holds the error classes of the simulator and the
// mapping from each class to a process exit code. Every class that carries
// a cause implements Unwrap, so callers branch with errors.Is and errors.As.
package apperrors
