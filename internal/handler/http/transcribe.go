package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/transcription"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

// audioFields are tried in order before falling back to the first file in the form
var audioFields = []string{"audio", "file", "recording"}

type TranscribeHandler interface {
	Transcribe(w http.ResponseWriter, r *http.Request)
	Demo(w http.ResponseWriter, r *http.Request)
}

type transcribeHandlerImpl struct {
	transcriptionService transcription.Service
}

func NewTranscribeHandler(transcriptionService transcription.Service) TranscribeHandler {
	return &transcribeHandlerImpl{transcriptionService: transcriptionService}
}

// Transcribe handles POST /api/transcribe
func (h *transcribeHandlerImpl) Transcribe(w http.ResponseWriter, r *http.Request) {
	if !h.transcriptionService.Configured() {
		response.HandleError(w, transcription.ErrServiceUnavailable)
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		response.HandleError(w, transcription.ErrNotMultipart)
		return
	}

	file, err := readAudioFile(w, r)
	if err != nil {
		slog.Warn("Transcription upload rejected", "error", err)
		response.HandleError(w, err)
		return
	}

	resp, err := h.transcriptionService.Transcribe(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Demo handles POST /api/transcribe-demo
func (h *transcribeHandlerImpl) Demo(w http.ResponseWriter, r *http.Request) {
	resp, err := h.transcriptionService.Demo(r.Context())
	if err != nil {
		slog.Error("Demo transcription failed", "error", err)
		response.InternalServerError(w, "Demo transcription failed")
		return
	}
	response.Success(w, resp)
}

func readAudioFile(w http.ResponseWriter, r *http.Request) (transcription.AudioFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, transcription.MaxUploadSize+maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil {
		return transcription.AudioFile{}, transcription.ErrInvalidForm
	}

	header := findAudioHeader(r.MultipartForm)
	if header == nil {
		return transcription.AudioFile{}, transcription.ErrNoAudio
	}
	if header.Size == 0 {
		return transcription.AudioFile{}, transcription.ErrEmptyAudio
	}
	if header.Size > transcription.MaxUploadSize {
		return transcription.AudioFile{}, transcription.ErrInvalidForm
	}

	f, err := header.Open()
	if err != nil {
		return transcription.AudioFile{}, transcription.ErrInvalidForm
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return transcription.AudioFile{}, errors.Join(transcription.ErrInvalidForm, err)
	}

	return transcription.AudioFile{
		Data:     data,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}

func findAudioHeader(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, field := range audioFields {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	for _, files := range form.File {
		if len(files) > 0 {
			return files[0]
		}
	}
	return nil
}
