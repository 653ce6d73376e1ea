// Package graindelay implements a granular delay and pitch-shifting effect.
//
// A GrainDelay combines a feedback echo line with a pool of overlapping,
// windowed grains. Each sample:
//
//  1. speed, filter cutoff, feedback and mix are smoothed towards Params;
//  2. the echo tap is read from a VariableLine, which crossfades for 200 ms
//     whenever the echo time changes;
//  3. the echo tap is written into the grain buffer, from which the active
//     voices read at pitch-shifted rates;
//  4. the grain sum passes a stereo one-pole tone filter, a low-pass while
//     Pitch is above zero and a high-pass otherwise;
//  5. its mono downmix, scaled by feedback, is clamped to [-1, 1],
//     DC-blocked and written back into the echo line with the input;
//  6. dry input and filtered grains are blended with an equal-power mix.
//
// Grains are triggered Overlap times per grain period by a phasor running
// at Frequency·Overlap. A trigger is assigned round robin to the next free
// voice; when all voices are busy it is dropped and counted.
//
// GrainDelay performs no allocation after New and is not safe for
// concurrent use.
package graindelay
