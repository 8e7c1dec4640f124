package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

const DefaultTextModel = "gemini-2.5-flash"

// Analyzer は自由記述のキャラクター説明を構造化された解析結果に変換します。
// 通信は1回だけで、リトライはしません。
type Analyzer struct {
	client TextModel
	model  string
}

// NewAnalyzer は Analyzer を初期化します。model が空の場合は DefaultTextModel を使います。
func NewAnalyzer(client TextModel, model string) (*Analyzer, error) {
	if client == nil {
		return nil, fmt.Errorf("client (TextModel) is required")
	}
	if model == "" {
		model = DefaultTextModel
	}
	return &Analyzer{client: client, model: model}, nil
}

// Analyze はキャラクター説明と画風から CharacterAnalysis を生成します。
// 応答が空、または JSON として解釈できない場合は domain.ErrAnalysis を返します。
func (a *Analyzer) Analyze(ctx context.Context, freeText string, style domain.Style) (*domain.CharacterAnalysis, error) {
	if strings.TrimSpace(freeText) == "" {
		return nil, fmt.Errorf("%w: 入力テキストが空です", domain.ErrAnalysis)
	}
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrAnalysis, domain.ErrInvalidStyle, style)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(style), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	}
	contents := []*genai.Content{genai.NewContentFromText(freeText, genai.RoleUser)}

	slog.InfoContext(ctx, "キャラクター解析をリクエストします", "model", a.model, "style", style)
	resp, err := a.client.GenerateContent(ctx, a.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Gemini解析リクエストエラー: %w", domain.ErrAnalysis, err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: 解析結果が空でした", domain.ErrAnalysis)
	}

	var analysis domain.CharacterAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: JSONパースに失敗しました: %w", domain.ErrAnalysis, err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysis, err)
	}
	return &analysis, nil
}

// responseText は最初の候補のテキストパーツを連結します。思考パーツは除外します。
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
