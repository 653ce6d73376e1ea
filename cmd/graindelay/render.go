package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/effects/graindelay"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type renderConfig struct {
	in, out   string
	processor core.ProcessorConfig
	seconds   float64
	tail      float64
	seed      int64
	voices    int
	overlap   int
	grainMode interp.Mode
	echoMode  interp.Mode
	params    graindelay.Params
}

type channelStats struct {
	name      string
	peak, rms float64
}

func render(cfg renderConfig, logger *slog.Logger) ([]channelStats, error) {
	var (
		in         []float64
		sampleRate = int(cfg.processor.SampleRate)
		blockSize  = cfg.processor.BlockSize
		err        error
	)
	if cfg.in != "" {
		in, sampleRate, err = readWav(cfg.in, logger)
		if err != nil {
			return nil, err
		}
	} else {
		if sampleRate <= 0 || cfg.seconds <= 0 {
			return nil, fmt.Errorf("generated input needs rate > 0 and seconds > 0: rate=%d seconds=%g", sampleRate, cfg.seconds)
		}
		in = noiseBursts(cfg.seed, sampleRate, int(cfg.seconds*float64(sampleRate)))
	}
	if blockSize < 1 {
		blockSize = core.DefaultProcessorConfig().BlockSize
	}
	if cfg.tail > 0 {
		in = append(in, make([]float64, int(cfg.tail*float64(sampleRate)))...)
	}

	if err := cfg.params.Validate(); err != nil {
		logger.Warn("parameters out of range are clamped", "err", err)
	}

	opts := []graindelay.Option{
		graindelay.WithSeed(cfg.seed),
		graindelay.WithOverlap(cfg.overlap),
		graindelay.WithGrainInterpolation(cfg.grainMode),
		graindelay.WithEchoInterpolation(cfg.echoMode),
		graindelay.WithMaxBlockSize(blockSize),
	}
	if cfg.voices > 0 {
		opts = append(opts, graindelay.WithVoices(cfg.voices))
	}
	g, err := graindelay.New(float64(sampleRate), opts...)
	if err != nil {
		return nil, err
	}
	g.ResetParams(cfg.params)

	logger.Debug("rendering",
		"samples", len(in),
		"sampleRate", sampleRate,
		"blockSize", blockSize,
		"voices", g.Voices(),
		"latency", g.Latency(),
		"params", fmt.Sprintf("%+v", cfg.params.Sanitize()),
	)

	outL := make([]float64, len(in))
	outR := make([]float64, len(in))
	for start := 0; start < len(in); start += blockSize {
		end := min(start+blockSize, len(in))
		g.ProcessBlock(in[start:end], outL[start:end], outR[start:end], cfg.params)
	}

	logger.Debug("rendered", "activeVoices", g.ActiveVoices(), "dropped", g.Dropped())

	if err := writeWav(cfg.out, sampleRate, outL, outR); err != nil {
		return nil, err
	}
	logger.Info("wrote output", "path", cfg.out, "seconds", float64(len(in))/float64(sampleRate))

	return []channelStats{levels("left", outL), levels("right", outR)}, nil
}

// noiseBursts returns quarter-second noise bursts separated by silence.
func noiseBursts(seed int64, sampleRate, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	burst := sampleRate / 4
	out := make([]float64, n)
	for i := range out {
		if (i/burst)%4 == 0 {
			out[i] = (r.Float64()*2 - 1) * 0.5
		}
	}
	return out
}

// readWav decodes path and downmixes it to mono in [-1, 1].
func readWav(path string, logger *slog.Logger) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, err
	}
	format := dec.Format()
	bitDepth := int(dec.SampleBitDepth())
	if bitDepth == 0 || format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("unsupported WAV format in %s: bitDepth=%d channels=%d", path, bitDepth, format.NumChannels)
	}
	nsamples := int(dec.PCMLen()) / ((bitDepth-1)/8 + 1)

	logger.Debug("decoding wav file",
		"path", path,
		"sampleRate", format.SampleRate,
		"channels", format.NumChannels,
		"bitDepth", bitDepth,
		"samples", nsamples,
	)

	buf := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, nsamples),
		SourceBitDepth: bitDepth,
	}
	n, err := dec.PCMBuffer(buf)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, errors.New("no samples decoded from " + path)
	}

	data := buf.AsFloatBuffer().Data[:n]
	scale := 1 / math.Pow(2, float64(bitDepth-1))
	nch := format.NumChannels
	mono := make([]float64, n/nch)
	for i := range mono {
		var sum float64
		for ch := 0; ch < nch; ch++ {
			sum += data[i*nch+ch]
		}
		mono[i] = sum * scale / float64(nch)
	}
	return mono, format.SampleRate, nil
}

// writeWav encodes left and right as interleaved 16-bit PCM, clipping at
// full scale.
func writeWav(path string, sampleRate int, left, right []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, 2*len(left)),
		SourceBitDepth: 16,
	}
	for i := range left {
		buf.Data[2*i] = int(core.Clamp(left[i], -1, 1) * 32767)
		buf.Data[2*i+1] = int(core.Clamp(right[i], -1, 1) * 32767)
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func levels(name string, data []float64) channelStats {
	s := channelStats{name: name}
	if len(data) == 0 {
		return s
	}
	var sum float64
	for _, x := range data {
		s.peak = math.Max(s.peak, math.Abs(x))
		sum += x * x
	}
	s.rms = math.Sqrt(sum / float64(len(data)))
	return s
}

func printStats(w io.Writer, path string, stats []channelStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "File\tChannel\tPeak [dBFS]\tRMS [dBFS]\n")
	_, _ = fmt.Fprintf(tw, "----\t-------\t-----------\t----------\n")
	for _, s := range stats {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\n", path, s.name, core.LinearToDB(s.peak), core.LinearToDB(s.rms))
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
