package transcription

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/transcription"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/whisper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
	got   whisper.Audio
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio whisper.Audio) (string, error) {
	f.calls++
	f.got = audio
	return f.text, f.err
}

func TestTranscriptionService_Transcribe(t *testing.T) {
	fake := &fakeTranscriber{text: "Hello team"}
	svc := NewTranscriptionService(fake, nil, 0)

	resp, err := svc.Transcribe(context.Background(), transcription.AudioFile{
		Data: []byte("audio"), Filename: "blob", MimeType: "audio/webm;codecs=opus",
	})

	require.NoError(t, err)
	assert.True(t, svc.Configured())
	assert.Equal(t, "Hello team", resp.Transcription)
	assert.False(t, resp.Demo)
	assert.Equal(t, whisper.Audio{Data: []byte("audio"), Filename: "recording.webm", MimeType: "audio/webm"}, fake.got)
}

func TestTranscriptionService_Transcribe_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := NewTranscriptionService(nil, nil, 0)
		assert.False(t, svc.Configured())
		_, err := svc.Transcribe(context.Background(), transcription.AudioFile{Data: []byte("a")})
		assert.ErrorIs(t, err, transcription.ErrServiceUnavailable)
	})

	t.Run("empty audio", func(t *testing.T) {
		svc := NewTranscriptionService(&fakeTranscriber{}, nil, 0)
		_, err := svc.Transcribe(context.Background(), transcription.AudioFile{})
		assert.ErrorIs(t, err, transcription.ErrEmptyAudio)
	})

	t.Run("upstream", func(t *testing.T) {
		upstream := &whisper.UpstreamError{StatusCode: 400, Body: "bad audio"}
		svc := NewTranscriptionService(&fakeTranscriber{err: upstream}, nil, 0)
		_, err := svc.Transcribe(context.Background(), transcription.AudioFile{Data: []byte("a")})
		assert.ErrorIs(t, err, transcription.ErrUpstream)
		var got *whisper.UpstreamError
		assert.ErrorAs(t, err, &got)
	})

	t.Run("transport", func(t *testing.T) {
		svc := NewTranscriptionService(&fakeTranscriber{err: errors.New("dial tcp")}, nil, 0)
		_, err := svc.Transcribe(context.Background(), transcription.AudioFile{Data: []byte("a")})
		assert.ErrorIs(t, err, transcription.ErrUpstream)
	})
}

func TestTranscriptionService_Transcribe_Cached(t *testing.T) {
	c, err := cache.New[string](10, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	fake := &fakeTranscriber{text: "once"}
	svc := NewTranscriptionService(fake, c, 0)
	file := transcription.AudioFile{Data: []byte("same bytes"), Filename: "a.webm"}

	_, err = svc.Transcribe(context.Background(), file)
	require.NoError(t, err)
	c.Wait()
	resp, err := svc.Transcribe(context.Background(), file)

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, "once", resp.Transcription)
	assert.Equal(t, 1, fake.calls)
}

func TestTranscriptionService_Demo(t *testing.T) {
	svc := NewTranscriptionService(nil, nil, 0)

	resp, err := svc.Demo(context.Background())

	require.NoError(t, err)
	assert.True(t, resp.Demo)
	assert.Equal(t, int64(1500), resp.Duration)
	require.True(t, strings.HasPrefix(resp.Transcription, "[DEMO MODE] "))
	assert.Contains(t, DemoTranscriptions(), strings.TrimPrefix(resp.Transcription, "[DEMO MODE] "))
}

func TestTranscriptionService_Demo_Cancelled(t *testing.T) {
	svc := NewTranscriptionService(nil, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Demo(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeAudio(t *testing.T) {
	tests := []struct {
		filename, mime         string
		wantName, wantMimeType string
	}{
		{"", "", "recording.webm", "audio/webm"},
		{"blob", "audio/mp4", "recording.m4a", "audio/mp4"},
		{"note.wav", "application/octet-stream", "note.wav", "audio/wav"},
		{"note.MP3", "", "note.MP3", "audio/mpeg"},
		{"voice.webm", "audio/webm; codecs=opus", "voice.webm", "audio/webm"},
		{"blob", "audio/ogg;codecs=opus", "recording.ogg", "audio/ogg"},
		{"unknown.bin", "", "unknown.bin", "audio/webm"},
	}
	for _, tt := range tests {
		name, mime := NormalizeAudio(tt.filename, tt.mime)
		assert.Equal(t, tt.wantName, name, "%q %q", tt.filename, tt.mime)
		assert.Equal(t, tt.wantMimeType, mime, "%q %q", tt.filename, tt.mime)
	}
}
