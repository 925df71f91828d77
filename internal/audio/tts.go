package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TTSService generates spoken prompts for the exercises. Spelling words
// and reading texts are cached as MP3 files under the audio directory.
type TTSService struct {
	audioDir string
	language string
}

const ttsRequestTimeout = 10 * time.Second

// NewTTSService creates a new TTS service. language is the BCP 47 code
// passed to the synthesizer; the tablets run in French.
func NewTTSService(audioDir, language string) *TTSService {
	if language == "" {
		language = "fr"
	}
	return &TTSService{
		audioDir: audioDir,
		language: language,
	}
}

// GenerateWordAudio converts a spelling word to speech and saves it as
// MP3. Returns the filename (not full path) on success.
func (s *TTSService) GenerateWordAudio(word string) (string, error) {
	// Sanitize text for filename
	sanitized := strings.ToLower(strings.TrimSpace(word))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("word_%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	// Reuse a previously generated file
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.generateUsingGoogleTTS(word, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// GenerateAudioWithPrefix converts text to speech under a caller-chosen
// filename prefix. Used for quiz questions and reading texts, whose
// content is too long to embed in the filename.
func (s *TTSService) GenerateAudioWithPrefix(text, prefix string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(prefix))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.generateUsingGoogleTTS(text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
// This is a simple, free option that doesn't require API keys
func (s *TTSService) generateUsingGoogleTTS(text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// DeleteAudioFile removes a generated audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already deleted
	}

	return os.Remove(path)
}
