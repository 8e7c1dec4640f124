package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

// callWithTimeout は fn とタイマーを競争させます。
// fn が ctx を無視して戻らない場合でも、呼び出し元は timeout 経過後に解放されます。
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	var zero T
	select {
	case r := <-ch:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", domain.ErrTimeout, timeout)
		}
		return r.v, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", domain.ErrTimeout, timeout)
		}
		return zero, ctx.Err()
	}
}
