package studio

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1500 * time.Millisecond
)

// Option は Studio の挙動を変更します。
type Option func(*Studio)

// WithMaxAttempts は画像生成の最大試行回数を設定します。1未満は無視されます。
func WithMaxAttempts(n int) Option {
	return func(s *Studio) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithRetryDelay は失敗から次の試行までの固定待機時間を設定します。
func WithRetryDelay(d time.Duration) Option {
	return func(s *Studio) {
		if d >= 0 {
			s.retryDelay = d
		}
	}
}

// WithSleeper は待機処理を差し替えます。主にテスト用です。
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Studio) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithClock は結果のタイムスタンプに使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(s *Studio) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator は結果 ID の採番方法を差し替えます。
func WithIDGenerator(fn func() string) Option {
	return func(s *Studio) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
