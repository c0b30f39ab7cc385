// Package analysis provides post-run statistics for Monte Carlo series.
//
//   - [Autocorrelation]: normalised autocorrelation function via FFT
//   - [IntegratedTime]: integrated autocorrelation time
//   - [BlockError]: mean and standard error by blocking
//   - [PowerSpectrum]: magnitude spectrum of a series
//
// # Correlated samples
//
// Successive single-flip records are strongly correlated. The number of
// effectively independent samples is roughly len(series) / (2·τ):
//
//	tau := analysis.IntegratedTime(result.Magnetizations())
package analysis
