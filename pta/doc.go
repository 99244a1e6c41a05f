// Package pta defines the shared data types of the pulsar-timing-array
// analysis packages: pulsar records, named parameter sets with priors, the
// inverse prior covariance of the common red-noise process, and the Model
// capability interface through which a fitted noise model exposes its
// basis matrices and noise-weighted products.
//
// The Model interface is deliberately narrow. Which noise terms exist per
// pulsar, and how their covariances are assembled, stays inside the model
// implementation; consumers such as [github.com/cwbudde/algo-pta/optstat]
// only see basis accessors, solve operations and parameter metadata.
package pta
