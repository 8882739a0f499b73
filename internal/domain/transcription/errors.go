package transcription

import "errors"

var (
	ErrServiceUnavailable = errors.New("transcription service unavailable: OpenAI API key not configured, set OPENAI_API_KEY")
	ErrNotMultipart       = errors.New("content type must be multipart/form-data")
	ErrNoAudio            = errors.New("no audio file provided")
	ErrEmptyAudio         = errors.New("audio file is empty, record some audio before submitting")
	ErrInvalidForm        = errors.New("failed to process audio file")
	ErrUpstream           = errors.New("OpenAI Whisper API call failed")
)
