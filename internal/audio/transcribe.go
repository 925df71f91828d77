package audio

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Transcriber turns dictated audio into text for the notes module
type Transcriber struct {
	client *openai.Client
}

// NewTranscriber creates a transcriber backed by the Whisper API.
// Returns nil when no API key is configured; callers treat a nil
// transcriber as the feature being disabled.
func NewTranscriber(apiKey string) *Transcriber {
	if apiKey == "" {
		return nil
	}
	return &Transcriber{client: openai.NewClient(apiKey)}
}

// Transcribe converts an audio stream to text. filename tells the API
// the container format of the stream.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
		Language: "fr",
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}
