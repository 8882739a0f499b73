package transcription

import "context"

type Service interface {
	// Configured reports whether an API key is set
	Configured() bool
	Transcribe(ctx context.Context, file AudioFile) (TranscriptionResponse, error)
	Demo(ctx context.Context) (TranscriptionResponse, error)
}
