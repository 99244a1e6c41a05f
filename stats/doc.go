// Package stats summarizes sample distributions produced by
// noise-marginalized optimal-statistic runs: one-pass moment statistics
// (mean, variance, skewness, excess kurtosis) plus extrema, RMS and
// interpolated quantiles.
package stats
