// Package cwt implements a continuous wavelet transform (CWT) of real,
// uniformly sampled signals using a frequency-domain Morlet mother wavelet
// and FFT-based convolution.
//
// The transform is built from three parts:
//
//   - [Morlet]: the mother wavelet, a Gaussian bump sampled in the frequency
//     domain and regenerated for every padded transform size.
//   - [Scales]: the ordered analysis scales, one per output row, distributed
//     logarithmically, linearly in scale, or linearly in frequency.
//   - [Transform]: the engine. It runs a single forward FFT of the
//     zero-padded input, then for every scale multiplies a private copy of
//     the spectrum with the scaled daughter wavelet and transforms it back.
//
// # Usage
//
//	scales, err := cwt.NewScales(cwt.ScaleLog, 48000, 20, 20000, 64)
//	if err != nil {
//		return err
//	}
//	tr := cwt.NewTransform(cwt.NewMorlet(1.0), true)
//	rows, err := tr.CWT(len(signal), signal, scales)
//
// rows[i] is the complex response for scales.Scales()[i]. Every row has
// length [NextPowerOfTwo](len(signal)).
//
// # Parallelism
//
// Scales are processed by a fixed pool of workers ([WithWorkers]). The
// shared spectrum is read-only once workers start; each worker owns its FFT
// plan and writes only to its own output rows, so row order never depends on
// scheduling.
//
// # FFT backends
//
// The FFT itself is delegated to a [Backend]. [AlgoFFT] is the default;
// [GonumFFT] and [GoDSPFFT] are drop-in alternatives. All backends use the
// exp(-i*2*pi*k*n/N) kernel.
package cwt
