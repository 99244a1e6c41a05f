// Package simulate generates synthetic pulsar-timing datasets for
// validating cross-correlation analyses: Gaussian time series with
// power-law spectra (frequency-domain synthesis, inverse FFT) and
// correlated common-process realizations across a pulsar array, with the
// cross-pulsar correlation structure taken from an overlap reduction
// function.
package simulate
