// Package psd provides power spectral density models for red-noise
// processes on Fourier frequency grids.
//
// The only model currently implemented is the power law used for both
// pulsar-intrinsic red noise and the common gravitational-wave process,
// normalized to a characteristic strain amplitude at a reference frequency
// of 1/yr.
package psd
