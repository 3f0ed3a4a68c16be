package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

// ErrFormat is returned for WAV data that cannot be decoded.
var ErrFormat = errors.New("audio: unsupported wav data")

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
	wavBitDepth         = 16
)

// Clip is a mono recording in the effect bank's sample domain.
type Clip struct {
	SampleRate int
	Samples    []int32
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// EncodeWAV writes samples as a mono 16-bit PCM WAV stream. Samples are
// saturated to 16 bits. The header sizes are patched on completion, so w
// must be seekable.
func EncodeWAV(w io.WriteSeeker, sampleRate int, samples []int32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrFormat, sampleRate)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: wavBitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(core.Saturate(s))
	}

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, 1, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}

// DecodeWAV reads a PCM (8 to 32 bit, plain or extensible) or 32-bit float
// WAV stream. Multi-channel input is averaged to mono and every format is
// scaled to the 16-bit range.
func DecodeWAV(r io.ReadSeeker) (Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Clip{}, fmt.Errorf("%w: not a wav stream", ErrFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return Clip{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	format := dec.Format()
	bits := int(dec.SampleBitDepth())
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 || bits <= 0 {
		return Clip{}, fmt.Errorf("%w: missing format", ErrFormat)
	}

	scale, err := sampleScale(dec.WavAudioFormat, bits)
	if err != nil {
		return Clip{}, err
	}

	bytesPerSample := (bits-1)/8 + 1
	buf := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, int(dec.PCMLen())/bytesPerSample),
		SourceBitDepth: bits,
	}

	n, err := dec.PCMBuffer(buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Clip{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return Clip{
		SampleRate: format.SampleRate,
		Samples:    downmix(buf.Data[:n], format.NumChannels, scale),
	}, nil
}

// sampleScale returns the function mapping one decoded integer to the
// 16-bit sample range.
func sampleScale(tag uint16, bits int) (func(int) float64, error) {
	switch {
	case tag == wavFormatFloat && bits == 32:
		return func(v int) float64 {
			return float64(math.Float32frombits(uint32(v))) * core.MaxSample
		}, nil
	case tag != wavFormatPCM && tag != wavFormatExtensible:
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrFormat, tag, bits)
	case bits == 8:
		return func(v int) float64 { return float64(v-128) * 256 }, nil
	case bits <= 32:
		factor := math.Ldexp(1, wavBitDepth-bits)
		return func(v int) float64 { return float64(v) * factor }, nil
	default:
		return nil, fmt.Errorf("%w: %d-bit pcm", ErrFormat, bits)
	}
}

func downmix(data []int, channels int, scale func(int) float64) []int32 {
	out := make([]int32, len(data)/channels)
	for i := range out {
		var sum float64
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += scale(v)
		}

		out[i] = core.ToSample(sum / float64(channels))
	}

	return out
}
