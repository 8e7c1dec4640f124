package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
	"github.com/shouni/hyperreal-character-studio/pkg/imgutil"
)

type mockAnalyzer struct{}

func (m *mockAnalyzer) Analyze(ctx context.Context, freeText string, style domain.Style) (*domain.CharacterAnalysis, error) {
	return &domain.CharacterAnalysis{
		VisualProfile:     &domain.VisualProfile{FacialFeatures: "scar over left eye"},
		Cinematography:    &domain.Cinematography{LightingSetup: "hard rim light"},
		NarrativeElements: &domain.NarrativeElements{ClothingTexture: "worn leather"},
		RefinedPrompt:     "veteran mercenary, " + freeText,
	}, nil
}

type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (m *mockGenerator) GenerateBatch(ctx context.Context, analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.release != nil {
		<-m.release
	}
	images := make([]string, 4)
	for i := range images {
		images[i] = imgutil.ToJPEGDataURI([]byte(fmt.Sprintf("img%d", i)))
	}
	return images, nil
}

func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockTranscriber struct {
	transcribeFunc func(ctx context.Context, audio []byte, mimeType string) (string, error)
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio, mimeType)
	}
	return "a tall knight", nil
}
