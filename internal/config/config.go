package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/hyperreal-character-studio/pkg/analyzer"
	"github.com/shouni/hyperreal-character-studio/pkg/generator"
	"github.com/shouni/hyperreal-character-studio/pkg/imgutil"
	"github.com/shouni/hyperreal-character-studio/pkg/studio"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	APIKey         string
	Port           string
	TextModel      string
	ImageModel     string
	MaxAttempts    int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	JPEGQuality    int
	DebugMode      bool
	AllowedOrigins []string // WebSocket 接続を許可する Origin。空ならすべて許可
}

// Load は .env（存在すれば）と環境変数から設定を読み込みます。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env の読み込みに失敗しました", "error", err)
	}

	cfg := &Config{
		APIKey:     getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		Port:       getEnv("PORT", "8080"),
		TextModel:  getEnv("TEXT_MODEL", analyzer.DefaultTextModel),
		ImageModel: getEnv("IMAGE_MODEL", generator.DefaultImageModel),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
	}

	var err error
	if cfg.MaxAttempts, err = getEnvInt("MAX_ATTEMPTS", studio.DefaultMaxAttempts); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = getEnvDuration("RETRY_DELAY", studio.DefaultRetryDelay); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", generator.DefaultRequestTimeout); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality, err = getEnvInt("JPEG_QUALITY", imgutil.DefaultJPEGQuality); err != nil {
		return nil, err
	}
	if cfg.DebugMode, err = getEnvBool("DEBUG_MODE", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を確認します。
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY (または API_KEY) が設定されていません")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS は1以上である必要があります: %d", c.MaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("RETRY_DELAY は0以上である必要があります: %s", c.RetryDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT は正の値である必要があります: %s", c.RequestTimeout)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY は1から100の範囲で指定してください: %d", c.JPEGQuality)
	}
	return nil
}

// GeminiConfig は画像生成用 gemini.Client の設定を返します。
// リトライの主体は Studio なので、クライアント内部の再試行は最小回数にし、待機も RetryDelay に揃えます。
func (c *Config) GeminiConfig() gemini.Config {
	delay := c.RetryDelay
	if delay <= 0 {
		delay = studio.DefaultRetryDelay
	}
	return gemini.Config{
		APIKey:       c.APIKey,
		MaxRetries:   gemini.DefaultMaxRetries,
		InitialDelay: delay,
		MaxDelay:     delay,
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvList はカンマ区切りの値を空要素を除いて返します。
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s の値が不正です: %w", key, err)
	}
	return b, nil
}
