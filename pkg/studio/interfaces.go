package studio

import (
	"context"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

// Analyzer はキャラクター説明を解析します。
type Analyzer interface {
	Analyze(ctx context.Context, freeText string, style domain.Style) (*domain.CharacterAnalysis, error)
}

// BatchGenerator は解析結果から4枚の画像を生成します。
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error)
}
