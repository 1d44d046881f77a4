package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-analyzer/errors"
)

// allowedMIMETypes are the upload media types accepted for processing
var allowedMIMETypes = map[string]bool{
	"audio/mpeg":      true,
	"audio/wav":       true,
	"audio/x-wav":     true,
	"audio/mp4":       true,
	"audio/x-m4a":     true, // mimetype reports m4a content as x-m4a
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

// allowedExtensions are the upload filename extensions accepted for processing
var allowedExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".mp4": true,
	".mov": true,
	".avi": true,
	".m4a": true,
}

// Processor validates uploads and converts them into mono 16kHz PCM WAV for
// the speech-to-text stage
type Processor struct {
	chunkSeconds int
	logger       *zap.Logger
}

// NewProcessor creates a new audio processor
func NewProcessor(chunkSeconds int, logger *zap.Logger) *Processor {
	if chunkSeconds <= 0 {
		chunkSeconds = 600
	}
	return &Processor{
		chunkSeconds: chunkSeconds,
		logger:       logger,
	}
}

// ValidateUpload checks the filename extension and the sniffed content type
// against the accepted media types. Content is sniffed from the file itself,
// never trusted from the request.
func (p *Processor) ValidateUpload(path string, originalFilename string) error {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return apperrors.ErrUnsupportedMediaType(ext)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return apperrors.ErrInternal(fmt.Errorf("detect content type: %w", err))
	}
	if !allowedMIMETypes[mtype.String()] {
		return apperrors.ErrUnsupportedMediaType(mtype.String())
	}
	return nil
}

// Normalize converts the input media into a mono 16kHz 16-bit PCM WAV file
// next to the input. The caller owns the returned path and removes it when
// processing finishes.
func (p *Processor) Normalize(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_normalized.wav"

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		p.logger.Error("ffmpeg conversion failed",
			zap.String("input", inputPath),
			zap.String("output", string(output)),
			zap.Error(err))
		os.Remove(outputPath)
		return "", apperrors.ErrAudioNormalizeFailed(err)
	}

	p.logger.Info("audio normalized",
		zap.String("input", inputPath),
		zap.String("wav", outputPath))
	return outputPath, nil
}

// Duration reads the length of a normalized WAV file in seconds
func (p *Processor) Duration(wavPath string) (float64, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return 0, apperrors.ErrInternal(fmt.Errorf("open wav: %w", err))
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	dur, err := decoder.Duration()
	if err != nil {
		return 0, apperrors.ErrAudioNormalizeFailed(fmt.Errorf("read wav duration: %w", err))
	}
	return dur.Seconds(), nil
}

// SplitIntoChunks cuts a normalized WAV file into sequential segments no
// longer than the configured chunk length, so long recordings stay under the
// transcription API's upload limit. Files at or under one chunk are returned
// as-is. Chunk files live next to the source and belong to the caller.
func (p *Processor) SplitIntoChunks(wavPath string) ([]string, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("open wav: %w", err))
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	decoder.ReadInfo()
	if !decoder.WasPCMAccessed() {
		if err := decoder.FwdToPCM(); err != nil {
			return nil, apperrors.ErrAudioNormalizeFailed(fmt.Errorf("seek pcm data: %w", err))
		}
	}
	if decoder.Err() != nil {
		return nil, apperrors.ErrAudioNormalizeFailed(decoder.Err())
	}

	sampleRate := int(decoder.SampleRate)
	numChannels := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	samplesPerChunk := sampleRate * numChannels * p.chunkSeconds

	dur, err := decoder.Duration()
	if err != nil {
		return nil, apperrors.ErrAudioNormalizeFailed(fmt.Errorf("read wav duration: %w", err))
	}
	if dur.Seconds() <= float64(p.chunkSeconds) {
		return []string{wavPath}, nil
	}

	base := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	var chunkPaths []string
	cleanupChunks := func() {
		for _, path := range chunkPaths {
			os.Remove(path)
		}
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, samplesPerChunk),
		SourceBitDepth: bitDepth,
	}

	for chunkIdx := 0; ; chunkIdx++ {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			cleanupChunks()
			return nil, apperrors.ErrAudioNormalizeFailed(fmt.Errorf("read pcm chunk %d: %w", chunkIdx, err))
		}
		if n == 0 {
			break
		}

		chunkPath := fmt.Sprintf("%s_chunk%03d.wav", base, chunkIdx)
		if err := writeChunk(chunkPath, buf, n, bitDepth); err != nil {
			cleanupChunks()
			return nil, err
		}
		chunkPaths = append(chunkPaths, chunkPath)

		if n < samplesPerChunk {
			break
		}
	}

	p.logger.Info("audio split for transcription",
		zap.String("wav", wavPath),
		zap.Int("chunks", len(chunkPaths)))
	return chunkPaths, nil
}

func writeChunk(path string, buf *audio.IntBuffer, n int, bitDepth int) error {
	out, err := os.Create(path)
	if err != nil {
		return apperrors.ErrInternal(fmt.Errorf("create chunk: %w", err))
	}

	enc := wav.NewEncoder(out, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	chunkBuf := &audio.IntBuffer{
		Format:         buf.Format,
		Data:           buf.Data[:n],
		SourceBitDepth: buf.SourceBitDepth,
	}
	if err := enc.Write(chunkBuf); err != nil {
		enc.Close()
		out.Close()
		return apperrors.ErrAudioNormalizeFailed(fmt.Errorf("write chunk: %w", err))
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return apperrors.ErrAudioNormalizeFailed(fmt.Errorf("finalize chunk: %w", err))
	}
	return out.Close()
}
