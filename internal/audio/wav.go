// Package audio converts audio into the mono 16kHz float32 samples the
// whisper engine consumes: WAV decoding for files and microphone capture
// for live input.
package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DecodeWAVFile reads a PCM WAV file and returns mono float32 samples
// normalized to [-1.0, 1.0] along with the file's sample rate.
func DecodeWAVFile(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	samples, rate, err := DecodeWAV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return samples, rate, nil
}

// DecodeWAV decodes PCM WAV data into mono float32 samples normalized to
// [-1.0, 1.0]. Multi-channel input is downmixed by averaging.
func DecodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audio: not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, 0, fmt.Errorf("audio: read PCM: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("audio: empty WAV buffer")
	}

	samples := normalize(buf)
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 1 {
		channels = buf.Format.NumChannels
	}
	if channels > 1 {
		samples = downmix(samples, channels)
	}

	rate := int(dec.SampleRate)
	if rate == 0 && buf.Format != nil {
		rate = buf.Format.SampleRate
	}
	return samples, rate, nil
}

// normalize scales integer PCM to float32 in [-1.0, 1.0] using the source
// bit depth.
func normalize(buf *audio.IntBuffer) []float32 {
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	div := float32(int(1) << (bitDepth - 1))
	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v) / div
	}
	return out
}

// downmix averages interleaved channels into mono.
func downmix(samples []float32, channels int) []float32 {
	frames := len(samples) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// Resample converts samples from one rate to another with linear
// interpolation. Good enough for speech input; not a general resampler.
func Resample(samples []float32, from, to int) []float32 {
	if from == to || from <= 0 || to <= 0 || len(samples) == 0 {
		return samples
	}
	ratio := float64(from) / float64(to)
	n := int(float64(len(samples)) / ratio)
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = samples[j]*(1-frac) + samples[j+1]*frac
	}
	return out
}
