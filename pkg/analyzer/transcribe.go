package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultAudioMIMEType = "audio/webm"

	transcriptionInstruction = "Transcribe the audio exactly as spoken. It describes a character. Detect the language (Chinese or English) automatically. Return ONLY the transcribed text, no other commentary."
)

// Transcriber は音声入力をテキストに書き起こします。
type Transcriber struct {
	client TextModel
	model  string
}

func NewTranscriber(client TextModel, model string) (*Transcriber, error) {
	if client == nil {
		return nil, fmt.Errorf("client (TextModel) is required")
	}
	if model == "" {
		model = DefaultTextModel
	}
	return &Transcriber{client: client, model: model}, nil
}

// Transcribe は音声データを送信し、書き起こし結果を返します。
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("音声データが空です")
	}
	if mimeType == "" {
		mimeType = DefaultAudioMIMEType
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		{Text: transcriptionInstruction},
	}
	resp, err := t.client.GenerateContent(ctx, t.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		return "", fmt.Errorf("音声の書き起こしに失敗しました: %w", err)
	}
	return responseText(resp), nil
}

// AppendTranscript は既存の入力に書き起こし結果を追記します。
// 既存の入力が空白のみでなければ半角スペースで区切ります。
func AppendTranscript(existing, transcript string) string {
	if strings.TrimSpace(existing) == "" {
		return existing + transcript
	}
	return existing + " " + transcript
}
