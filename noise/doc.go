// Package noise provides a reference joint noise model for a pulsar array:
// per-pulsar white noise with an EFAC scale parameter plus a common
// power-law red-noise process on a shared Fourier basis.
//
// The model implements [github.com/cwbudde/algo-pta/pta.Model] and is the
// simplest member of that interface family: its white-noise covariance is
// diagonal, its basis matrices are parameter-free, and the common-process
// prior is shared by all pulsars. Real analyses substitute a fitted model
// with per-backend white noise, intrinsic red noise and timing-model
// marginalization; the optimal-statistic engine only sees the interface.
//
// # Usage
//
//	model, _ := noise.NewArray(psrs, noise.DefaultArrayConfig())
//	os, _ := optstat.New(model)
//	res, _ := os.Compute(params)
package noise
