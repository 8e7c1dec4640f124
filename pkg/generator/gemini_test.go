package generator

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
	"github.com/shouni/hyperreal-character-studio/pkg/prompt"
)

func testAnalysis() *domain.CharacterAnalysis {
	return &domain.CharacterAnalysis{
		VisualProfile:     &domain.VisualProfile{FacialFeatures: "sharp jaw", BodyConstitution: "mesomorph"},
		Cinematography:    &domain.Cinematography{LightingSetup: "cold rim light"},
		NarrativeElements: &domain.NarrativeElements{ClothingTexture: "fur cloak"},
		RefinedPrompt:     "weathered viking warrior",
	}
}

// variationOf はプロンプトに含まれるアングル記述から順番を求める。
func variationOf(p string) int {
	for i, v := range prompt.Variations() {
		if strings.Contains(p, v.Descriptor) {
			return i
		}
	}
	return -1
}

func TestGeminiGenerator_GenerateBatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	t.Run("完了順に関係なくバリエーション順で4枚返す", func(t *testing.T) {
		core := &mockImageCore{
			genFunc: func(ctx context.Context, p string) (string, error) {
				idx := variationOf(p)
				// 後ろのバリエーションほど早く終わる
				time.Sleep(time.Duration(4-idx) * 5 * time.Millisecond)
				return prompt.Variations()[idx].Name, nil
			},
		}
		gen, err := NewGeminiGenerator(core)
		require.NoError(t, err)

		images, err := gen.GenerateBatch(ctx, testAnalysis(), domain.StylePhotorealistic, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"frontal", "three-quarter", "profile", "close-up"}, images)
		assert.Len(t, core.prompts, 4)
	})

	t.Run("1枚でも失敗すれば画像は返らない", func(t *testing.T) {
		var calls atomic.Int32
		failure := errors.New("blocked")
		core := &mockImageCore{
			genFunc: func(ctx context.Context, p string) (string, error) {
				calls.Add(1)
				if variationOf(p) == 2 {
					return "", failure
				}
				return "ok", nil
			},
		}
		gen, _ := NewGeminiGenerator(core)

		images, err := gen.GenerateBatch(ctx, testAnalysis(), domain.StyleCyberpunk, nil)
		assert.Nil(t, images)
		assert.ErrorIs(t, err, domain.ErrGeneration)
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "profile")
		assert.EqualValues(t, 4, calls.Load())
	})

	t.Run("タイムアウトは ErrGeneration と ErrTimeout の両方で判定できる", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				if variationOf(parts[0].Text) == 0 {
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return imageResponse("image/jpeg", []byte("fake")), nil
			},
		}
		core, _ := NewGeminiImageCore(ai, "", 10*time.Millisecond, 0)
		gen, _ := NewGeminiGenerator(core)

		images, err := gen.GenerateBatch(ctx, testAnalysis(), domain.StyleNeoNoir, nil)
		assert.Nil(t, images)
		assert.ErrorIs(t, err, domain.ErrGeneration)
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("失敗すると他のリクエストの ctx はキャンセルされる", func(t *testing.T) {
		var cancelled atomic.Int32
		core := &mockImageCore{
			genFunc: func(ctx context.Context, p string) (string, error) {
				if variationOf(p) == 0 {
					return "", errors.New("boom")
				}
				select {
				case <-ctx.Done():
					cancelled.Add(1)
					return "", ctx.Err()
				case <-time.After(time.Second):
					return "late", nil
				}
			},
		}
		gen, _ := NewGeminiGenerator(core)

		_, err := gen.GenerateBatch(ctx, testAnalysis(), domain.StyleEthereal, nil)
		require.Error(t, err)
		assert.EqualValues(t, 3, cancelled.Load())
	})

	t.Run("上書き値がすべてのプロンプトに反映される", func(t *testing.T) {
		core := &mockImageCore{genFunc: func(ctx context.Context, p string) (string, error) { return "ok", nil }}
		gen, _ := NewGeminiGenerator(core)

		_, err := gen.GenerateBatch(ctx, testAnalysis(), domain.StyleRoughSketch,
			&domain.GenerationOverrides{Armor: domain.ArmorMedieval, Environment: domain.EnvSnowyMountain})
		require.NoError(t, err)
		require.Len(t, core.prompts, 4)
		for _, p := range core.prompts {
			assert.Contains(t, p, "MEDIEVAL ARMOR/SUIT")
			assert.Contains(t, p, "SNOWY MOUNTAIN")
			assert.NotContains(t, p, "fur cloak")
			assert.NotContains(t, p, "cold rim light")
		}
	})

	t.Run("不完全な解析結果は通信せずに失敗する", func(t *testing.T) {
		core := &mockImageCore{genFunc: func(ctx context.Context, p string) (string, error) { return "ok", nil }}
		gen, _ := NewGeminiGenerator(core)

		_, err := gen.GenerateBatch(ctx, &domain.CharacterAnalysis{}, domain.StylePhotorealistic, nil)
		assert.ErrorIs(t, err, domain.ErrGeneration)
		assert.Empty(t, core.prompts)
	})
}

func TestNewGeminiGenerator(t *testing.T) {
	_, err := NewGeminiGenerator(nil)
	assert.Error(t, err)
}
