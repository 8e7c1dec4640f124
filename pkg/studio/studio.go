package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

// 利用者に表示するステータスメッセージ
const (
	MessageAnalyzing  = "Deconstructing Prompt..."
	MessageGenerating = "Synthesizing 4 Variations..."
	MessageFailed     = "Failed to generate character."
)

var (
	ErrBusy        = errors.New("generation already in progress")
	ErrNoResult    = errors.New("no previous result to regenerate from")
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// Snapshot は Studio の状態の読み取り専用コピーです。
type Snapshot struct {
	State  domain.LoadingState     `json:"state"`
	Result *domain.GeneratedResult `json:"result,omitempty"`
}

// SubmitOptions は Submit の追加指定です。
type SubmitOptions struct {
	// SkipAnalysis は直前の解析結果がある場合に限り解析を省略します。
	SkipAnalysis bool
	Overrides    *domain.GenerationOverrides
}

// round は1回の生成ラウンドの入力です。analysis が nil なら解析から始めます。
type round struct {
	prompt    string
	style     domain.Style
	overrides *domain.GenerationOverrides
	analysis  *domain.CharacterAnalysis
}

// Studio は解析、画像生成、リトライ、状態遷移を管理します。
// LoadingState と現在の GeneratedResult を書き換えるのは Studio だけです。
type Studio struct {
	analyzer  Analyzer
	generator BatchGenerator

	maxAttempts int
	retryDelay  time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	now         func() time.Time
	newID       func() string

	mu        sync.Mutex
	notifyMu  sync.Mutex // 通知を遷移順に直列化する。mu の後に取得する
	state     domain.LoadingState
	result    *domain.GeneratedResult
	busy      bool
	observers []func(domain.LoadingState)
}

// New は依存関係を注入して Studio を初期化します。
func New(analyzer Analyzer, generator BatchGenerator, opts ...Option) (*Studio, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	s := &Studio{
		analyzer:    analyzer,
		generator:   generator,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		sleep:       sleepContext,
		now:         time.Now,
		newID:       uuid.NewString,
		state:       domain.LoadingState{Status: domain.StatusIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OnStateChange は状態遷移のたびに呼ばれる関数を登録します。
// fn は遷移の順序どおりに呼ばれます。fn の中から Studio のメソッドを呼んではいけません。
func (s *Studio) OnStateChange(fn func(domain.LoadingState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot は現在の状態と直近の成功結果のコピーを返します。
func (s *Studio) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Result: s.result.Clone()}
}

// Submit は新しい説明文で解析から生成までを実行します。
// 戻り値のチャネルにはラウンドの最終結果が1回だけ送られます。
func (s *Studio) Submit(ctx context.Context, freeText string, style domain.Style) (<-chan error, error) {
	return s.SubmitWith(ctx, freeText, style, SubmitOptions{})
}

// SubmitWith は Submit に解析省略や上書き値を指定できる版です。
func (s *Studio) SubmitWith(ctx context.Context, freeText string, style domain.Style, opts SubmitOptions) (<-chan error, error) {
	if strings.TrimSpace(freeText) == "" {
		return nil, ErrEmptyPrompt
	}
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStyle, style)
	}

	return s.start(ctx, func(last *domain.GeneratedResult) (round, error) {
		r := round{prompt: freeText, style: style, overrides: cloneOverrides(opts.Overrides)}
		if opts.SkipAnalysis && last != nil {
			r.analysis = last.Analysis
		}
		return r, nil
	})
}

// Regenerate は直前の解析結果と上書き値を再利用して画像だけを作り直します。
func (s *Studio) Regenerate(ctx context.Context) (<-chan error, error) {
	return s.start(ctx, func(last *domain.GeneratedResult) (round, error) {
		if last == nil {
			return round{}, ErrNoResult
		}
		return round{
			prompt:    last.OriginalPrompt,
			style:     last.Style,
			overrides: cloneOverrides(last.Overrides),
			analysis:  last.Analysis,
		}, nil
	})
}

// UpdateOverrides はスライダーの確定値で画像だけを作り直します。
func (s *Studio) UpdateOverrides(ctx context.Context, overrides domain.GenerationOverrides) (<-chan error, error) {
	return s.start(ctx, func(last *domain.GeneratedResult) (round, error) {
		if last == nil {
			return round{}, ErrNoResult
		}
		return round{
			prompt:    last.OriginalPrompt,
			style:     last.Style,
			overrides: &overrides,
			analysis:  last.Analysis,
		}, nil
	})
}

// start は実行枠を確保して最初の状態に遷移し、ラウンドを非同期で開始します。
func (s *Studio) start(ctx context.Context, build func(last *domain.GeneratedResult) (round, error)) (<-chan error, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	r, err := build(s.result)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.busy = true
	first := domain.LoadingState{Status: domain.StatusGenerating, Message: MessageGenerating}
	if r.analysis == nil {
		first = domain.LoadingState{Status: domain.StatusAnalyzing, Message: MessageAnalyzing}
	}
	notify := s.transitionLocked(first)
	s.mu.Unlock()
	notify()

	done := make(chan error, 1)
	go func() {
		done <- s.run(ctx, r)
	}()
	return done, nil
}

func (s *Studio) run(ctx context.Context, r round) error {
	analysis := r.analysis
	if analysis == nil {
		a, err := s.analyzer.Analyze(ctx, r.prompt, r.style)
		if err != nil {
			s.finish(ctx, nil, err)
			return err
		}
		analysis = a
		s.setState(domain.LoadingState{Status: domain.StatusGenerating, Message: MessageGenerating})
	}

	images, err := s.generateWithRetry(ctx, analysis, r)
	if err != nil {
		s.finish(ctx, nil, err)
		return err
	}

	s.finish(ctx, &domain.GeneratedResult{
		ID:             s.newID(),
		ImageURLs:      images,
		Analysis:       analysis,
		OriginalPrompt: r.prompt,
		Style:          r.style,
		Timestamp:      s.now(),
		Overrides:      r.overrides,
	}, nil)
	return nil
}

// generateWithRetry は固定間隔で最大 maxAttempts 回まで画像生成を試みます。
func (s *Studio) generateWithRetry(ctx context.Context, analysis *domain.CharacterAnalysis, r round) ([]string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			s.setState(domain.LoadingState{
				Status:  domain.StatusGenerating,
				Message: fmt.Sprintf("Synthesizing Visuals (Attempt %d/%d)...", attempt, s.maxAttempts),
			})
		}

		images, err := s.generator.GenerateBatch(ctx, analysis, r.style, r.overrides)
		if err == nil {
			return images, nil
		}
		lastErr = err
		slog.WarnContext(ctx, "画像生成に失敗しました", "attempt", attempt, "max_attempts", s.maxAttempts, "error", err)

		if attempt == s.maxAttempts {
			break
		}
		if err := s.sleep(ctx, s.retryDelay); err != nil {
			return nil, fmt.Errorf("リトライ待機中に中断されました: %w (直前のエラー: %v)", err, lastErr)
		}
	}
	return nil, fmt.Errorf("%d回の試行がすべて失敗しました: %w", s.maxAttempts, lastErr)
}

// finish は実行枠を解放し、最終状態に遷移します。
// 失敗時は直前の成功結果を残します。
func (s *Studio) finish(ctx context.Context, result *domain.GeneratedResult, err error) {
	s.mu.Lock()
	s.busy = false
	var notify func()
	if err != nil {
		slog.ErrorContext(ctx, "生成ワークフローが失敗しました", "error", err)
		notify = s.transitionLocked(domain.LoadingState{Status: domain.StatusError, Message: MessageFailed})
	} else {
		s.result = result
		slog.InfoContext(ctx, "生成が完了しました", "id", result.ID, "images", len(result.ImageURLs))
		notify = s.transitionLocked(domain.LoadingState{Status: domain.StatusComplete})
	}
	s.mu.Unlock()
	notify()
}

func (s *Studio) setState(state domain.LoadingState) {
	s.mu.Lock()
	notify := s.transitionLocked(state)
	s.mu.Unlock()
	notify()
}

// transitionLocked は s.mu を保持した状態で呼ぶこと。
// 戻り値の関数はロック解放後に呼び出して観測者へ通知する。
func (s *Studio) transitionLocked(state domain.LoadingState) func() {
	s.state = state
	observers := slices.Clone(s.observers)
	s.notifyMu.Lock()
	return func() {
		defer s.notifyMu.Unlock()
		for _, fn := range observers {
			fn(state)
		}
	}
}

func cloneOverrides(o *domain.GenerationOverrides) *domain.GenerationOverrides {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
