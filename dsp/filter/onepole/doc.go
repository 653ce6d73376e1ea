// Package onepole provides single-pole tone filters and a DC blocker.
//
// OnePole and Stereo are one-pole low-pass filters whose cutoff may change
// every sample. The cutoff is given either in Hertz or as a 0..1 "linear"
// control scaled against a 44.1 kHz reference. DCBlock is the classic
// y = x - x[n-1] + c·y[n-1] high-pass with c = 1 - 220.5/sampleRate.
package onepole
