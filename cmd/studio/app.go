package main

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/internal/config"
	"github.com/shouni/hyperreal-character-studio/pkg/analyzer"
	"github.com/shouni/hyperreal-character-studio/pkg/generator"
	"github.com/shouni/hyperreal-character-studio/pkg/studio"
)

// app は設定から組み立てた依存関係です。
type app struct {
	cfg         *config.Config
	studio      *studio.Studio
	transcriber *analyzer.Transcriber
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	if cfg.DebugMode && !debug {
		setupLogger(true)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI クライアントの作成に失敗しました: %w", err)
	}

	az, err := analyzer.NewAnalyzer(client.Models, cfg.TextModel)
	if err != nil {
		return nil, err
	}
	tr, err := analyzer.NewTranscriber(client.Models, cfg.TextModel)
	if err != nil {
		return nil, err
	}

	imageClient, err := gemini.NewClient(ctx, cfg.GeminiConfig())
	if err != nil {
		return nil, fmt.Errorf("画像生成クライアントの作成に失敗しました: %w", err)
	}
	core, err := generator.NewGeminiImageCore(imageClient, cfg.ImageModel, cfg.RequestTimeout, cfg.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("画像生成コアの初期化に失敗しました: %w", err)
	}
	gen, err := generator.NewGeminiGenerator(core)
	if err != nil {
		return nil, err
	}

	st, err := studio.New(az, gen,
		studio.WithMaxAttempts(cfg.MaxAttempts),
		studio.WithRetryDelay(cfg.RetryDelay),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, studio: st, transcriber: tr}, nil
}
