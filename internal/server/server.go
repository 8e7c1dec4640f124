package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shouni/hyperreal-character-studio/pkg/analyzer"
	"github.com/shouni/hyperreal-character-studio/pkg/domain"
	"github.com/shouni/hyperreal-character-studio/pkg/imgutil"
	"github.com/shouni/hyperreal-character-studio/pkg/studio"
)

const maxAudioBytes = 20 << 20

// Transcriber は音声入力の書き起こしを担当します。
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Server は Studio を HTTP と WebSocket で公開します。
type Server struct {
	studio      *studio.Studio
	transcriber Transcriber
	hub         *Hub
	// baseCtx は生成ラウンドに渡すコンテキスト。リクエスト終了で生成を止めないために使う。
	baseCtx context.Context
	now     func() time.Time
}

// New は Server を作成し、Studio の状態遷移を WebSocket に接続します。
// allowedOrigins は WebSocket 接続を許可する Origin で、空ならすべて許可します。
func New(ctx context.Context, st *studio.Studio, transcriber Transcriber, allowedOrigins []string) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("studio is required")
	}
	if transcriber == nil {
		return nil, fmt.Errorf("transcriber is required")
	}

	s := &Server{
		studio:      st,
		transcriber: transcriber,
		hub:         NewHub(st.Snapshot().State, allowedOrigins),
		baseCtx:     ctx,
		now:         time.Now,
	}
	st.OnStateChange(s.hub.Broadcast)
	return s, nil
}

// Hub は WebSocket ハブを返します。
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router は gin のルーティングを構築します。
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")
	{
		api.GET("/options", s.handleOptions)
		api.GET("/state", s.handleState)
		api.POST("/generate", s.handleGenerate)
		api.POST("/regenerate", s.handleRegenerate)
		api.POST("/overrides", s.handleOverrides)
		api.POST("/transcribe", s.handleTranscribe)
		api.GET("/prompt", s.handlePrompt)
		api.GET("/images/:index", s.handleImage)
	}
	r.GET("/ws", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTPリクエスト",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

type optionsResponse struct {
	Styles             []domain.Style       `json:"styles"`
	ArmorOptions       []domain.ArmorStyle  `json:"armor_options"`
	EnvironmentOptions []domain.Environment `json:"environment_options"`
	SamplePrompts      []string             `json:"sample_prompts"`
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, optionsResponse{
		Styles:             domain.Styles(),
		ArmorOptions:       domain.ArmorOptions(),
		EnvironmentOptions: domain.EnvironmentOptions(),
		SamplePrompts:      domain.SamplePrompts,
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.studio.Snapshot())
}

type generateRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	Style        string `json:"style" binding:"required"`
	Armor        string `json:"armor"`
	Environment  string `json:"environment"`
	SkipAnalysis bool   `json:"skip_analysis"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt と style は必須です"})
		return
	}
	style, err := domain.ParseStyle(req.Style)
	if err != nil {
		s.respondError(c, err)
		return
	}
	overrides, err := parseOverrides(req.Armor, req.Environment)
	if err != nil {
		s.respondError(c, err)
		return
	}

	opts := studio.SubmitOptions{SkipAnalysis: req.SkipAnalysis}
	if !overrides.IsZero() {
		opts.Overrides = overrides
	}
	done, err := s.studio.SubmitWith(s.baseCtx, req.Prompt, style, opts)
	s.accepted(c, "generate", done, err)
}

func (s *Server) handleRegenerate(c *gin.Context) {
	done, err := s.studio.Regenerate(s.baseCtx)
	s.accepted(c, "regenerate", done, err)
}

type overridesRequest struct {
	Armor       string `json:"armor"`
	Environment string `json:"environment"`
}

func (s *Server) handleOverrides(c *gin.Context) {
	var req overridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストボディが不正です"})
		return
	}
	overrides, err := parseOverrides(req.Armor, req.Environment)
	if err != nil {
		s.respondError(c, err)
		return
	}
	done, err := s.studio.UpdateOverrides(s.baseCtx, *overrides)
	s.accepted(c, "overrides", done, err)
}

// accepted は生成ラウンドの受付結果を返し、完了をバックグラウンドで待ちます。
func (s *Server) accepted(c *gin.Context, command string, done <-chan error, err error) {
	if err != nil {
		s.respondError(c, err)
		return
	}
	go func() {
		if err := <-done; err != nil {
			slog.Warn("生成ラウンドが失敗しました", "command", command, "error", err)
		}
	}()
	c.JSON(http.StatusAccepted, s.studio.Snapshot())
}

type transcribeResponse struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

// handleTranscribe は multipart の "audio" フィールド、またはリクエストボディそのものを音声として扱います。
// フォームの "text" が指定されていれば書き起こし結果を追記した入力を prompt として返します。
func (s *Server) handleTranscribe(c *gin.Context) {
	var (
		audio    []byte
		mimeType string
		existing string
		err      error
	)

	if fh, ferr := c.FormFile("audio"); ferr == nil {
		existing = c.PostForm("text")
		mimeType = fh.Header.Get("Content-Type")
		f, oerr := fh.Open()
		if oerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "音声ファイルを開けませんでした"})
			return
		}
		defer f.Close()
		audio, err = io.ReadAll(io.LimitReader(f, maxAudioBytes))
	} else {
		mimeType = c.ContentType()
		audio, err = io.ReadAll(io.LimitReader(c.Request.Body, maxAudioBytes))
	}
	if err != nil || len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "音声データがありません"})
		return
	}

	text, err := s.transcriber.Transcribe(c.Request.Context(), audio, mimeType)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "音声認識に失敗しました", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Voice recognition failed. Please try again."})
		return
	}
	c.JSON(http.StatusOK, transcribeResponse{Text: text, Prompt: analyzer.AppendTranscript(existing, text)})
}

func (s *Server) handlePrompt(c *gin.Context) {
	snap := s.studio.Snapshot()
	if snap.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "まだ生成結果がありません"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refined_prompt": snap.Result.Analysis.RefinedPrompt})
}

// handleImage は index 番目の画像を添付ファイルとして返します。
func (s *Server) handleImage(c *gin.Context) {
	snap := s.studio.Snapshot()
	if snap.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "まだ生成結果がありません"})
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 || idx >= len(snap.Result.ImageURLs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index が範囲外です"})
		return
	}

	mimeType, data, err := imgutil.DecodeDataURI(snap.Result.ImageURLs[idx])
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "保存済み画像のデコードに失敗しました", "index", idx, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像を読み込めませんでした"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, imgutil.VariantFileName(idx, s.now())))
	c.Data(http.StatusOK, mimeType, data)
}

func parseOverrides(armor, environment string) (*domain.GenerationOverrides, error) {
	a, err := domain.ParseArmor(armor)
	if err != nil {
		return nil, err
	}
	e, err := domain.ParseEnvironment(environment)
	if err != nil {
		return nil, err
	}
	return &domain.GenerationOverrides{Armor: a, Environment: e}, nil
}

func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, studio.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "generation already in progress"})
	case errors.Is(err, studio.ErrNoResult):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no previous result"})
	case errors.Is(err, studio.ErrEmptyPrompt),
		errors.Is(err, domain.ErrInvalidStyle),
		errors.Is(err, domain.ErrInvalidOverride):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "リクエスト処理中に予期しないエラー", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": studio.MessageFailed})
	}
}
