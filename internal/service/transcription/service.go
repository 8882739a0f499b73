package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/transcription"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/whisper"
)

const (
	defaultMimeType = "audio/webm"
	demoPrefix      = "[DEMO MODE] "
	demoDuration    = 1500
)

var demoTranscriptions = []string{
	"Today I completed work on the user authentication system and made good progress on the API endpoints. The team collaboration has been excellent and we're on track for this week's sprint goals.",
	"I focused on bug fixes in the frontend components and improved the user interface responsiveness. Also coordinated with the design team on the new feature specifications.",
	"Made significant progress on the database optimization project. Performance improvements are showing great results in our testing environment. Planning to deploy to staging tomorrow.",
	"Worked on client requirements gathering and documentation updates. The new project roadmap is taking shape and stakeholders are aligned on priorities.",
	"Completed code reviews and helped onboard the new team member. Knowledge transfer sessions went well and development velocity is increasing.",
}

// Transcriber turns audio into text; whisper.Client satisfies it
type Transcriber interface {
	Transcribe(ctx context.Context, audio whisper.Audio) (string, error)
}

type TranscriptionServiceImpl struct {
	transcriber Transcriber
	cache       *cache.Cache[string]
	demoDelay   time.Duration
	now         func() time.Time
}

// NewTranscriptionService builds the service. transcriber may be nil when no
// API key is configured; Demo keeps working either way.
func NewTranscriptionService(transcriber Transcriber, transcripts *cache.Cache[string], demoDelay time.Duration) transcription.Service {
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		cache:       transcripts,
		demoDelay:   demoDelay,
		now:         time.Now,
	}
}

func (s *TranscriptionServiceImpl) Configured() bool {
	return s.transcriber != nil
}

func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, file transcription.AudioFile) (transcription.TranscriptionResponse, error) {
	if s.transcriber == nil {
		return transcription.TranscriptionResponse{}, transcription.ErrServiceUnavailable
	}
	if len(file.Data) == 0 {
		return transcription.TranscriptionResponse{}, transcription.ErrEmptyAudio
	}

	key := cache.Key("transcript", cache.Hash(file.Data))
	if text, ok := s.cache.Get(key); ok {
		return transcription.TranscriptionResponse{Transcription: text, Cached: true}, nil
	}

	filename, mimeType := NormalizeAudio(file.Filename, file.MimeType)
	start := s.now()

	text, err := s.transcriber.Transcribe(ctx, whisper.Audio{
		Data:     file.Data,
		Filename: filename,
		MimeType: mimeType,
	})
	if err != nil {
		var upstream *whisper.UpstreamError
		if errors.As(err, &upstream) {
			slog.Error("whisper rejected audio", "status", upstream.StatusCode, "filename", filename, "size", len(file.Data))
		} else {
			slog.Error("whisper call failed", "error", err, "filename", filename)
		}
		return transcription.TranscriptionResponse{}, fmt.Errorf("%w: %w", transcription.ErrUpstream, err)
	}

	s.cache.Set(key, text)
	duration := s.now().Sub(start).Milliseconds()
	slog.Info("audio transcribed", "filename", filename, "size", len(file.Data), "duration_ms", duration)

	return transcription.TranscriptionResponse{Transcription: text, Duration: duration}, nil
}

// Demo returns a canned transcript after the configured delay
func (s *TranscriptionServiceImpl) Demo(ctx context.Context) (transcription.TranscriptionResponse, error) {
	if s.demoDelay > 0 {
		t := time.NewTimer(s.demoDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return transcription.TranscriptionResponse{}, ctx.Err()
		case <-t.C:
		}
	}
	text := demoTranscriptions[rand.IntN(len(demoTranscriptions))]
	return transcription.TranscriptionResponse{
		Transcription: demoPrefix + text,
		Duration:      demoDuration,
		Demo:          true,
	}, nil
}

// DemoTranscriptions lists the canned demo texts without the prefix
func DemoTranscriptions() []string {
	return append([]string(nil), demoTranscriptions...)
}

// NormalizeAudio fills in a filename and mime type browsers often omit. The
// recorder produces webm, so that is the fallback for both.
func NormalizeAudio(filename, mimeType string) (string, string) {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	filename = strings.TrimSpace(filename)

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimeFromName(filename)
	}
	if filename == "" || filename == "blob" {
		filename = "recording" + extFromMime(mimeType)
	}
	return filename, mimeType
}

var extToMime = map[string]string{
	".webm": "audio/webm",
	".mp4":  "audio/mp4",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".mpeg": "audio/mpeg",
	".ogg":  "audio/ogg",
}

func mimeFromName(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		if m, ok := extToMime[strings.ToLower(filename[i:])]; ok {
			return m
		}
	}
	return defaultMimeType
}

func extFromMime(mimeType string) string {
	switch mimeType {
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	}
	return ".webm"
}
