package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		assert.Equal(t, "text", r.FormValue("response_format"))
		assert.Equal(t, "0", r.FormValue("temperature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "recording.webm", header.Filename)
		assert.Equal(t, "audio-bytes", string(data))

		w.Write([]byte("  Hello team.\n"))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"})
	text, err := client.Transcribe(context.Background(), Audio{Data: []byte("audio-bytes"), Filename: "recording.webm", MimeType: "audio/webm"})

	require.NoError(t, err)
	assert.Equal(t, "Hello team.", text)
}

func TestClient_Transcribe_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(strings.Repeat("x", 300)))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := client.Transcribe(context.Background(), Audio{Data: []byte("a"), Filename: "a.webm", MimeType: "audio/webm"})

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
	assert.Equal(t, "transcription API returned 429: "+strings.Repeat("x", 200), upErr.Error())
}
