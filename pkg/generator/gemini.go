package generator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
	"github.com/shouni/hyperreal-character-studio/pkg/prompt"
)

// GeminiGenerator は解析結果から4つのアングルの画像を並列生成する統合ジェネレーターです。
type GeminiGenerator struct {
	imgCore ImageGeneratorCore
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
func NewGeminiGenerator(core ImageGeneratorCore) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageGeneratorCore) is required")
	}
	return &GeminiGenerator{imgCore: core}, nil
}

// GenerateBatch は4枚の画像をバリエーション順（正面、斜め45度、横顔、クローズアップ）で返します。
// 1枚でも失敗すればバッチ全体が失敗し、画像は1枚も返しません。
func (g *GeminiGenerator) GenerateBatch(ctx context.Context, analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error) {
	prompts, err := prompt.Build(analysis, style, overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: プロンプト構築エラー: %w", domain.ErrGeneration, err)
	}
	variations := prompt.Variations()

	slog.InfoContext(ctx, "画像の一括生成を開始します", "style", style, "count", len(prompts), "overrides", !overrides.IsZero())

	images := make([]string, len(prompts))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range prompts {
		eg.Go(func() error {
			uri, err := g.imgCore.GenerateImage(egCtx, p)
			if err != nil {
				slog.WarnContext(ctx, "バリエーションの生成に失敗しました", "variation", variations[i].Name, "error", err)
				return fmt.Errorf("variation %s: %w", variations[i].Name, err)
			}
			images[i] = uri
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return images, nil
}
