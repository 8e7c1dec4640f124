package generator

import "time"

const (
	DefaultImageModel     = "gemini-2.5-flash-image"
	DefaultAspectRatio    = "1:1"
	DefaultRequestTimeout = 60 * time.Second
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}
