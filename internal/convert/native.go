package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	pbxaudio "github.com/ik5/audpbx/audio"
	"github.com/ik5/audpbx/utils"
)

// WAV header value for uncompressed PCM
const wavFormatPCM = 1

// Buffer sizes for the native pipeline
const (
	nativeFrameBytes = 4 // 16-bit stereo frame
	nativeBufSamples = 8192

	// audpbx Resampler reads at most 4096 samples from its source at once
	resampleBlockFrames = 2048
)

var errNoAudio = errors.New("no audio frames decoded")

// pcmReader is the part of gomp3.Decoder the pipeline needs
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Native converts files in process: go-mp3 decodes, the audpbx resampler
// adjusts the rate when needed and go-audio/wav writes the output.
type Native struct {
	sampleRate int
	newDecoder func(io.Reader) (pcmReader, error)
}

// NewNative creates an in-process transcoder producing 44.1 kHz 16-bit WAV
func NewNative() *Native {
	return &Native{
		sampleRate: OutputSampleRate,
		newDecoder: newMP3Decoder,
	}
}

func newMP3Decoder(r io.Reader) (pcmReader, error) {
	return gomp3.NewDecoder(r)
}

// Transcode decodes inputPath and writes outputPath. Any failure, including a
// panic inside the decoder or resampler, is reported as exit status 1 with the
// error text as stderr.
func (n *Native) Transcode(ctx context.Context, inputPath, outputPath string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{ExitCode: 1, Stderr: fmt.Sprintf("native transcoder panicked: %v", r)}
		}
	}()

	if err := n.convertFile(ctx, inputPath, outputPath); err != nil {
		return Result{ExitCode: 1, Stderr: err.Error()}
	}
	return Result{}
}

func (n *Native) convertFile(ctx context.Context, inputPath, outputPath string) (err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	dec, err := n.newDecoder(in)
	if err != nil {
		return fmt.Errorf("failed to decode mp3: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	return n.encode(ctx, dec, out)
}

// encode streams 16-bit little-endian stereo PCM from r into a WAV on w
func (n *Native) encode(ctx context.Context, r pcmReader, w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, n.sampleRate, OutputBitDepth, OutputChannels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: OutputChannels, SampleRate: n.sampleRate},
		SourceBitDepth: OutputBitDepth,
	}

	var (
		written int
		err     error
	)
	if r.SampleRate() == n.sampleRate {
		written, err = n.copyPCM(ctx, r, enc, buf)
	} else {
		written, err = n.resamplePCM(ctx, r, enc, buf)
	}
	if err != nil {
		return err
	}
	if written == 0 {
		return errNoAudio
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}

// copyPCM passes samples straight through when no rate change is needed
func (n *Native) copyPCM(ctx context.Context, r pcmReader, enc *wav.Encoder, buf *goaudio.IntBuffer) (int, error) {
	raw := make([]byte, nativeBufSamples*2)
	written := 0

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		k, readErr := io.ReadFull(r, raw)
		k -= k % nativeFrameBytes
		if k > 0 {
			buf.Data = bytesToInts(buf.Data[:0], raw[:k])
			if err := enc.Write(buf); err != nil {
				return written, fmt.Errorf("failed to write wav: %w", err)
			}
			written += k / 2
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			return written, nil
		default:
			return written, fmt.Errorf("failed to decode mp3: %w", readErr)
		}
	}
}

// resamplePCM routes the decoded stream through the audpbx resampler.
//
// The resampler at the pinned audpbx version indexes out of range when it
// refills its buffer, so each block of decoded frames gets a fresh Resampler
// that is read at most once. Blocks overlap by one frame and, when the rates
// allow it, span a whole number of rate periods so every block starts on the
// output sample grid.
func (n *Native) resamplePCM(ctx context.Context, r pcmReader, enc *wav.Encoder, buf *goaudio.IntBuffer) (int, error) {
	srcRate := r.SampleRate()
	if srcRate <= 0 {
		return 0, fmt.Errorf("failed to resample: invalid source rate %d", srcRate)
	}
	plan := newResamplePlan(srcRate, n.sampleRate)

	blockLen := (plan.step + 1) * OutputChannels
	block := make([]float32, 0, blockLen)
	raw := make([]byte, blockLen*2)
	out := make([]float32, plan.maxFrames*OutputChannels)
	written := 0

	for eof := false; !eof; {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		need := (blockLen - len(block)) * 2
		k, readErr := io.ReadFull(r, raw[:need])
		k -= k % nativeFrameBytes
		block = appendFloats(block, raw[:k])

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			eof = true
		default:
			return written, fmt.Errorf("failed to decode mp3: %w", readErr)
		}

		// Interpolation needs at least two frames
		if len(block) < 2*OutputChannels {
			break
		}

		want := plan.maxFrames
		if len(block) == blockLen && plan.frames > 0 {
			want = plan.frames
		}

		res := pbxaudio.NewResampler(&blockSource{rate: srcRate, samples: block}, n.sampleRate)
		k, err := res.ReadSamples(out[:want*OutputChannels])
		res.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return written, fmt.Errorf("failed to resample: %w", err)
		}

		k -= k % OutputChannels
		if k > 0 {
			buf.Data = buf.Data[:0]
			for _, s := range out[:k] {
				buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
			}
			if err := enc.Write(buf); err != nil {
				return written, fmt.Errorf("failed to write wav: %w", err)
			}
			written += k
		}

		// The last frame opens the next block
		block = append(block[:0], block[len(block)-OutputChannels:]...)
	}

	return written, nil
}

// resamplePlan splits the source into blocks for resamplePCM
type resamplePlan struct {
	step      int // source frames consumed per block
	frames    int // output frames of a full block, 0 when blocks are not rate aligned
	maxFrames int // upper bound of output frames for any block
}

func newResamplePlan(srcRate, dstRate int) resamplePlan {
	g := gcd(srcRate, dstRate)
	p, q := srcRate/g, dstRate/g

	plan := resamplePlan{step: resampleBlockFrames - 1}
	if m := (resampleBlockFrames - 1) / p; m > 0 {
		plan.step = p * m
		plan.frames = q * m
	}
	plan.maxFrames = (plan.step+1)*dstRate/srcRate + 2
	return plan
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// bytesToInts appends little-endian int16 samples from raw to dst
func bytesToInts(dst []int, raw []byte) []int {
	for i := 0; i+1 < len(raw); i += 2 {
		dst = append(dst, int(int16(uint16(raw[i])|uint16(raw[i+1])<<8)))
	}
	return dst
}

// appendFloats appends little-endian int16 samples from raw to dst as floats in [-1, 1)
func appendFloats(dst []float32, raw []byte) []float32 {
	for i := 0; i+1 < len(raw); i += 2 {
		dst = append(dst, float32(int16(uint16(raw[i])|uint16(raw[i+1])<<8))/32768.0)
	}
	return dst
}

// blockSource serves one block of decoded stereo frames as an audpbx audio.Source
type blockSource struct {
	rate    int
	samples []float32
}

func (s *blockSource) SampleRate() int { return s.rate }
func (s *blockSource) Channels() int   { return OutputChannels }
func (s *blockSource) BufSize() int    { return len(s.samples) }
func (s *blockSource) Close() error    { return nil }

func (s *blockSource) ReadSamples(dst []float32) (int, error) {
	if len(s.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, s.samples)
	s.samples = s.samples[n:]
	return n, nil
}
