package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
)

// DefaultJPEGQuality は画像モデルの出力を JPEG に変換する際の既定品質です。
const DefaultJPEGQuality = 90

// CompressToJPEG は image.Decode が扱える形式（PNG, GIF, JPEG）の画像を JPEG に再エンコードします。
// quality が 1〜100 の範囲外なら DefaultJPEGQuality を使います。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%s から JPEG へのエンコードに失敗しました: %w", format, err)
	}
	return buf.Bytes(), nil
}

// NormalizeToJPEG は JPEG 以外の画像を JPEG に変換します。
// 既に JPEG の場合や、デコードできない場合は元のデータをそのまま返します。
func NormalizeToJPEG(data []byte, mimeType string, quality int) []byte {
	if strings.EqualFold(mimeType, "image/jpeg") {
		return data
	}
	if converted, err := CompressToJPEG(data, quality); err == nil {
		return converted
	}
	return data
}
