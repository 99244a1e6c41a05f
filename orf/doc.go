// Package orf provides overlap reduction functions for pulsar-timing-array
// cross-correlation analyses.
//
// An overlap reduction function gives the expected correlation between the
// timing residuals of two pulsars as a function of their angular separation,
// under an assumed background model:
//
//   - Hellings-Downs: isotropic gravitational-wave background
//   - dipole: e.g. solar-system ephemeris errors
//   - monopole: e.g. clock errors, common to all pulsars
//
// Functions take unit sky-position vectors rather than precomputed angles so
// the auto-correlation case (identical positions) can be special-cased.
package orf
