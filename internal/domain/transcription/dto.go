package transcription

// MaxUploadSize is the Whisper API file limit
const MaxUploadSize = 25 << 20

// AudioFile is an uploaded recording as received
type AudioFile struct {
	Data     []byte
	Filename string
	MimeType string
}

type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
	Duration      int64  `json:"duration"`
	Demo          bool   `json:"demo,omitempty"`
	Cached        bool   `json:"cached,omitempty"`
}
