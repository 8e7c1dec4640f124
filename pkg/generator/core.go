package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/pkg/imgutil"
)

// GeminiImageCore は1リクエスト分の画像生成（通信、タイムアウト、解析、data URI 化）を担う基盤クラスです。
type GeminiImageCore struct {
	aiClient    ImageModel
	model       string
	aspectRatio string
	timeout     time.Duration
	jpegQuality int
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
// model, timeout, jpegQuality がゼロ値の場合は既定値を使います。
func NewGeminiImageCore(aiClient ImageModel, model string, timeout time.Duration, jpegQuality int) (*GeminiImageCore, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		model = DefaultImageModel
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = imgutil.DefaultJPEGQuality
	}

	return &GeminiImageCore{
		aiClient:    aiClient,
		model:       model,
		aspectRatio: DefaultAspectRatio,
		timeout:     timeout,
		jpegQuality: jpegQuality,
	}, nil
}

// GenerateImage はプロンプトを1回だけ送信し、最初に見つかった画像を data URI で返します。
// 制限時間を超えた場合は domain.ErrTimeout を返します。
func (c *GeminiImageCore) GenerateImage(ctx context.Context, prompt string) (string, error) {
	out, err := callWithTimeout(ctx, c.timeout, func(ctx context.Context) (*ImageOutput, error) {
		return c.executeRequest(ctx, []*genai.Part{{Text: prompt}})
	})
	if err != nil {
		return "", err
	}
	return c.toDataURI(out), nil
}

func (c *GeminiImageCore) executeRequest(ctx context.Context, parts []*genai.Part) (*ImageOutput, error) {
	opts := gemini.GenerateOptions{
		AspectRatio: c.aspectRatio,
	}

	resp, err := c.aiClient.GenerateWithParts(ctx, c.model, parts, opts)
	if err != nil {
		return nil, err
	}
	return c.parseToResponse(resp)
}
