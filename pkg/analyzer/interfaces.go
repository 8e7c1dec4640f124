package analyzer

import (
	"context"

	"google.golang.org/genai"
)

// TextModel はテキスト生成モデルとの通信を担当します。genai.Models がそのまま満たします。
type TextModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
