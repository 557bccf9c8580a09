package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type signal struct {
	source     string
	sampleRate int
	samples    []float64
}

func loadSignal(opts options, args []string) (signal, error) {
	switch len(args) {
	case 0:
		samples, err := synthTone(opts.tone, opts.rate, opts.duration)
		if err != nil {
			return signal{}, err
		}
		return signal{
			source:     fmt.Sprintf("tone %g Hz", opts.tone),
			sampleRate: opts.rate,
			samples:    samples,
		}, nil
	case 1:
		return readWAV(args[0])
	default:
		return signal{}, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}

// truncateSignal cuts sig to at most limit samples and reports whether it
// did. limit <= 0 disables the cap.
func truncateSignal(sig *signal, limit int) bool {
	if limit <= 0 || len(sig.samples) <= limit {
		return false
	}
	sig.samples = sig.samples[:limit]
	return true
}

// synthTone returns a unit-amplitude sine of the given length in seconds.
func synthTone(freq float64, sampleRate int, seconds float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}
	n := int(math.Round(seconds * float64(sampleRate)))
	if n <= 0 {
		return nil, fmt.Errorf("tone duration too short: %gs at %d Hz", seconds, sampleRate)
	}

	out := make([]float64, n)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out, nil
}

func readWAV(path string) (signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return signal{}, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	samples, err := downmix(buf)
	if err != nil {
		return signal{}, fmt.Errorf("%s: %w", path, err)
	}

	return signal{
		source:     path,
		sampleRate: buf.Format.SampleRate,
		samples:    samples,
	}, nil
}

var errNoAudio = errors.New("no audio samples")

// downmix averages interleaved channels into a mono signal scaled to
// [-1, 1) by the source bit depth. 8-bit WAV data is unsigned.
func downmix(buf *audio.IntBuffer) ([]float64, error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, errNoAudio
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	depth := buf.SourceBitDepth
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", depth)
	}

	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, errNoAudio
	}

	offset := 0
	if depth == 8 {
		offset = 128
	}

	scale := 1 / (float64(int64(1)<<(depth-1)) * float64(channels))
	out := make([]float64, frames)
	for i := range out {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c] - offset
		}
		out[i] = float64(sum) * scale
	}
	return out, nil
}
