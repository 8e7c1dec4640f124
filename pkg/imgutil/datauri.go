package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const jpegDataURIPrefix = "data:image/jpeg;base64,"

// ToJPEGDataURI はバイト列を JPEG としてタグ付けした data URI に変換します。
func ToJPEGDataURI(data []byte) string {
	return jpegDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI は base64 形式の data URI を MIME タイプとバイト列に分解します。
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("data URI ではありません")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URI にペイロードがありません")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("base64 以外のエンコーディングは未対応です: %s", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("base64 デコードに失敗しました: %w", err)
	}
	return mimeType, data, nil
}

// VariantFileName は保存用のファイル名 character-variant-<n>-<unix ms>.jpg を返します。n は1始まりです。
func VariantFileName(index int, at time.Time) string {
	return fmt.Sprintf("character-variant-%d-%d.jpg", index+1, at.UnixMilli())
}
