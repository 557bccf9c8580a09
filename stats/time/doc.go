// Package time computes time-axis statistics of real-valued traces.
//
// The functions are written for magnitude envelopes such as one row of a
// wavelet scalogram, but accept any real signal. All statistics are
// population statistics over the whole trace. Empty input yields zero
// values and -Inf for every dB field.
package time
