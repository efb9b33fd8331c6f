// Package analysis post-processes simulation series: spectral content
// of oscillatory signals and exponential-approach fits for the thermal
// relaxation runs.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2
// decimation. Inputs are zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	padded := make([]float64, NextPow2(len(data)))
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// NextPow2 returns the smallest power of two not below n (minimum 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// PowerSpectrum returns amplitude per frequency bin over the first
// half of the transform, with frequencies in cycles per sample time
// given the sampling interval dt.
func PowerSpectrum(data []float64, dt float64) (freqs, power []float64) {
	f := FFT(data)
	n := len(f)
	power = make([]float64, n/2)
	freqs = make([]float64, n/2)
	for i := range power {
		power[i] = cmplx.Abs(f[i])
		freqs[i] = float64(i) / (float64(n) * dt)
	}
	return freqs, power
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(data []float64, dt float64) float64 {
	freqs, power := PowerSpectrum(data, dt)
	if len(power) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	return freqs[best]
}
