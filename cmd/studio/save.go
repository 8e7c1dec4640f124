package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"

	"github.com/shouni/hyperreal-character-studio/pkg/imgutil"
)

const imageContentType = "image/jpeg"

// newOutputWriter は出力先に応じた OutputWriter を返します。
// gs:// と s3:// はそれぞれのクライアントを初期化し、それ以外はローカルに書き込みます。
func newOutputWriter(ctx context.Context, outDir string) (remoteio.OutputWriter, func() error, error) {
	var (
		factory remoteio.IOFactory
		err     error
	)
	switch {
	case remoteio.IsGCSURI(outDir):
		factory, err = gcsfactory.New(ctx)
	case remoteio.IsS3URI(outDir):
		factory, err = s3factory.New(ctx)
	default:
		return remoteio.NewUniversalIOWriter(nil, nil), func() error { return nil }, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("出力先クライアントの初期化に失敗しました: %w", err)
	}

	w, err := factory.OutputWriter()
	if err != nil {
		_ = factory.Close()
		return nil, nil, err
	}
	return w, factory.Close, nil
}

// outputURI は保存先ディレクトリとファイル名を結合します。リモート URI は常に "/" 区切りです。
func outputURI(outDir, name string) string {
	if remoteio.IsRemoteURI(outDir) {
		return strings.TrimSuffix(outDir, "/") + "/" + name
	}
	return filepath.Join(outDir, name)
}

// saveImages は data URI の画像をバリエーション順に保存し、書き込んだ URI を返します。
func saveImages(ctx context.Context, w remoteio.OutputWriter, outDir string, images []string, at time.Time) ([]string, error) {
	saved := make([]string, 0, len(images))
	for i, uri := range images {
		_, data, err := imgutil.DecodeDataURI(uri)
		if err != nil {
			return saved, fmt.Errorf("画像 %d のデコードに失敗しました: %w", i+1, err)
		}
		dst := outputURI(outDir, imgutil.VariantFileName(i, at))
		if err := w.Write(ctx, dst, bytes.NewReader(data), imageContentType); err != nil {
			return saved, fmt.Errorf("画像の保存に失敗しました (%s): %w", dst, err)
		}
		saved = append(saved, dst)
	}
	return saved, nil
}
