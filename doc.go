// Package hll holds the building blocks of a sliding-window HyperLogLog:
// rank extraction from 64-bit hashes, the hash and calibration
// collaborators, and the bias-corrected HyperLogLog++ estimator.
//
// The sketch itself lives in package sliding. It follows "Sliding HyperLogLog:
// Estimating cardinality in a data stream over a sliding window" (Chabchoub,
// Hébrail, 2010), which keeps per register a list of possible future maxima
// instead of a single value.
package hll
