package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

// ImageModel は画像生成モデルとの通信を担当するクライアントです。
// 本番では gemini.Client をそのまま渡します。
type ImageModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

var _ ImageModel = (*gemini.Client)(nil)

// ImageGeneratorCore は単一プロンプトから1枚の画像を生成します。
type ImageGeneratorCore interface {
	// GenerateImage は生成した画像を JPEG の data URI として返します。
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// BatchGenerator はビジネスロジック層が利用する統合窓口です。
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error)
}
