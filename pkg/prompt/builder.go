package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

// Build は解析結果から4枚分の画像プロンプトをバリエーション順で組み立てます。
// overrides が指定されていれば、衣装と背景は解析結果より優先されます。
func Build(analysis *domain.CharacterAnalysis, style domain.Style, overrides *domain.GenerationOverrides) ([]string, error) {
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	keywords, ok := StyleKeywords(style)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStyle, style)
	}

	outfit := Outfit(analysis, overrides)
	environment := Environment(analysis, overrides)

	prompts := make([]string, 0, len(variations))
	for _, v := range variations {
		var b strings.Builder
		b.WriteString(keywords)
		fmt.Fprintf(&b, "\nSUBJECT: %s.", analysis.RefinedPrompt)
		fmt.Fprintf(&b, "\nVIEW/ANGLE: %s.", v.Descriptor)
		fmt.Fprintf(&b, "\nDETAILS: %s, %s.", analysis.VisualProfile.FacialFeatures, analysis.VisualProfile.BodyConstitution)
		fmt.Fprintf(&b, "\nOUTFIT: %s.", outfit)
		fmt.Fprintf(&b, "\nENVIRONMENT: %s.", environment)
		b.WriteString("\n" + QualitySuffix)
		prompts = append(prompts, b.String())
	}
	return prompts, nil
}

// Outfit は装備の上書きがあればそれを、なければ解析結果の衣装テクスチャを返します。
func Outfit(analysis *domain.CharacterAnalysis, overrides *domain.GenerationOverrides) string {
	if overrides != nil && overrides.Armor != "" {
		return fmt.Sprintf("WEARING HEAVY %s ARMOR/SUIT, DETAILED GEAR", strings.ToUpper(string(overrides.Armor)))
	}
	return analysis.NarrativeElements.ClothingTexture
}

// Environment は背景の上書きがあればそれを返します。
// 上書きがない場合はライティング設定を背景の説明として流用します。
func Environment(analysis *domain.CharacterAnalysis, overrides *domain.GenerationOverrides) string {
	if overrides != nil && overrides.Environment != "" {
		return fmt.Sprintf("BACKGROUND IS %s, CINEMATIC ATMOSPHERE", strings.ToUpper(string(overrides.Environment)))
	}
	return analysis.Cinematography.LightingSetup
}
