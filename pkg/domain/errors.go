package domain

import "errors"

var (
	// ErrAnalysis はテキストモデルの応答が空、またはスキーマに合わない場合のエラーです。
	ErrAnalysis = errors.New("character analysis failed")
	// ErrGeneration は4枚のうちいずれかの画像生成に失敗した場合のエラーです。
	ErrGeneration = errors.New("image generation failed")
	// ErrTimeout は単一の画像リクエストが制限時間を超えた場合のエラーです。
	// 常に ErrGeneration と一緒にラップされます。
	ErrTimeout = errors.New("image request timed out")

	ErrInvalidStyle    = errors.New("invalid style")
	ErrInvalidOverride = errors.New("invalid override")
)
