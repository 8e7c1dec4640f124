package domain

import "time"

// GenerationOverrides はスライダーで指定された上書き値です。空文字は未指定を意味します。
type GenerationOverrides struct {
	Armor       ArmorStyle  `json:"armor,omitempty"`
	Environment Environment `json:"environment,omitempty"`
}

// IsZero はどちらも未指定かを返します。
func (o *GenerationOverrides) IsZero() bool {
	return o == nil || (o.Armor == "" && o.Environment == "")
}

// GeneratedResult は1回の生成ラウンドの成果物です。
// 再生成やスライダー変更時はこの単位で再送されます。
type GeneratedResult struct {
	ID             string               `json:"id"`
	ImageURLs      []string             `json:"image_urls"` // data URI、バリエーション順
	Analysis       *CharacterAnalysis   `json:"analysis"`
	OriginalPrompt string               `json:"original_prompt"`
	Style          Style                `json:"style"`
	Timestamp      time.Time            `json:"timestamp"`
	Overrides      *GenerationOverrides `json:"overrides,omitempty"`
}

// Clone は呼び出し側が自由に扱える深いコピーを返します。
func (r *GeneratedResult) Clone() *GeneratedResult {
	if r == nil {
		return nil
	}
	out := *r
	out.ImageURLs = append([]string(nil), r.ImageURLs...)
	out.Analysis = r.Analysis.Clone()
	if r.Overrides != nil {
		o := *r.Overrides
		out.Overrides = &o
	}
	return &out
}

// Status は生成処理の状態です。
type Status string

const (
	StatusIdle       Status = "idle"
	StatusAnalyzing  Status = "analyzing"
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// LoadingState は UI のローディング表示や無効化を決める状態です。
type LoadingState struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// InFlight は解析中または生成中なら true を返します。
func (s LoadingState) InFlight() bool {
	return s.Status == StatusAnalyzing || s.Status == StatusGenerating
}
