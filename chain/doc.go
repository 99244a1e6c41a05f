// Package chain holds posterior sample chains produced by MCMC noise-model
// fits, in the common PTA sampler layout: one row per sample, the named
// model parameters first, then four auxiliary columns (log-likelihood,
// log-prior, acceptance rate, and a sampler-reserved column).
package chain
