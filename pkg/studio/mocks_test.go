package studio

import (
	"context"
	"sync"
	"time"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

type mockAnalyzer struct {
	mu          sync.Mutex
	calls       int
	analyzeFunc func(ctx context.Context, freeText string, style domain.Style) (*domain.CharacterAnalysis, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, freeText string, style domain.Style) (*domain.CharacterAnalysis, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, freeText, style)
	}
	return testAnalysis(), nil
}

func (m *mockAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type batchCall struct {
	style     domain.Style
	overrides *domain.GenerationOverrides
	analysis  *domain.CharacterAnalysis
}

type mockGenerator struct {
	mu       sync.Mutex
	calls    []batchCall
	genFunc  func(attempt int) ([]string, error)
	blockFor chan struct{}
}

func (m *mockGenerator) GenerateBatch(ctx context.Context, analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, batchCall{style: style, overrides: overrides, analysis: analysis})
	attempt := len(m.calls)
	m.mu.Unlock()

	if m.blockFor != nil {
		<-m.blockFor
	}
	if m.genFunc != nil {
		return m.genFunc(attempt)
	}
	return fourImages("ok"), nil
}

func (m *mockGenerator) Calls() []batchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]batchCall(nil), m.calls...)
}

// recordingSleeper は待機せずに要求された時間だけを記録する。
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func (r *recordingSleeper) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// stateRecorder は OnStateChange で受け取った遷移を記録する。
type stateRecorder struct {
	mu     sync.Mutex
	states []domain.LoadingState
}

func (r *stateRecorder) Record(s domain.LoadingState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) States() []domain.LoadingState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LoadingState(nil), r.states...)
}

func testAnalysis() *domain.CharacterAnalysis {
	return &domain.CharacterAnalysis{
		VisualProfile:     &domain.VisualProfile{FacialFeatures: "tired eyes", BodyConstitution: "ectomorph"},
		Cinematography:    &domain.Cinematography{LightingSetup: "warm tungsten"},
		NarrativeElements: &domain.NarrativeElements{ClothingTexture: "wool hoodie"},
		RefinedPrompt:     "female programmer in a late-night cafe",
	}
}

func fourImages(tag string) []string {
	return []string{
		"data:image/jpeg;base64," + tag + "0",
		"data:image/jpeg;base64," + tag + "1",
		"data:image/jpeg;base64," + tag + "2",
		"data:image/jpeg;base64," + tag + "3",
	}
}
