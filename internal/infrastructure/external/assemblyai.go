package external

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/notetrackhq/notetrack/pkg/config"
)

// Transcriber turns a recording URL into text
type Transcriber interface {
	TranscribeURL(ctx context.Context, audioURL string) (string, error)
}

// AssemblyAITranscriber implements Transcriber on the AssemblyAI API.
// TranscribeFromURL polls until the transcript reaches a terminal state.
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
}

// NewAssemblyAITranscriber creates a transcriber from configuration
func NewAssemblyAITranscriber(cfg *config.Config) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{
		client:   aai.NewClient(cfg.Assembly.APIKey),
		language: cfg.Assembly.LanguageCode,
	}
}

func (t *AssemblyAITranscriber) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("transcription failed: %s", msg)
	}
	if transcript.Text == nil || *transcript.Text == "" {
		return "", fmt.Errorf("transcription produced no text")
	}
	return *transcript.Text, nil
}
