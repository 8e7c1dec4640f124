package domain

import (
	"errors"
	"fmt"
)

// VisualProfile はキャラクターの外見上の特徴です。
type VisualProfile struct {
	AgeRange           string `json:"age_range"`
	EthnicityArchetype string `json:"ethnicity_archetype"`
	BodyConstitution   string `json:"body_constitution"` // 医学的な体格表現（Ectomorph 等）
	FacialFeatures     string `json:"facial_features"`
	DistinctiveMarks   string `json:"distinctive_marks"` // 傷跡、タトゥー、あざ
}

// Cinematography は撮影設定です。
type Cinematography struct {
	LightingSetup string `json:"lighting_setup"`
	ColorGrading  string `json:"color_grading"`
	CameraAngle   string `json:"camera_angle"`
	LensChoice    string `json:"lens_choice"`
}

// NarrativeElements は表情や衣装など物語上の要素です。
type NarrativeElements struct {
	ExpressionMicroDetails string `json:"expression_micro_details"`
	ClothingTexture        string `json:"clothing_texture"`
	EnvironmentalContext   string `json:"environmental_context"`
	CurrentMood            string `json:"current_mood"`
}

// CharacterAnalysis はテキストモデルが返すキャラクター解析結果です。
// 生成後は変更しません。
type CharacterAnalysis struct {
	VisualProfile     *VisualProfile     `json:"visual_profile"`
	Cinematography    *Cinematography    `json:"cinematography"`
	NarrativeElements *NarrativeElements `json:"narrative_elements"`
	RefinedPrompt     string             `json:"refined_prompt"` // 画像モデル向けに最適化されたプロンプト
}

// Validate は必須の4フィールドがすべて揃っているかを確認します。
func (a *CharacterAnalysis) Validate() error {
	if a == nil {
		return errors.New("analysis is nil")
	}
	var missing []string
	if a.VisualProfile == nil {
		missing = append(missing, "visual_profile")
	}
	if a.Cinematography == nil {
		missing = append(missing, "cinematography")
	}
	if a.NarrativeElements == nil {
		missing = append(missing, "narrative_elements")
	}
	if a.RefinedPrompt == "" {
		missing = append(missing, "refined_prompt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("必須フィールドが不足しています: %v", missing)
	}
	return nil
}

// Clone は独立したコピーを返します。
func (a *CharacterAnalysis) Clone() *CharacterAnalysis {
	if a == nil {
		return nil
	}
	out := &CharacterAnalysis{RefinedPrompt: a.RefinedPrompt}
	if a.VisualProfile != nil {
		v := *a.VisualProfile
		out.VisualProfile = &v
	}
	if a.Cinematography != nil {
		c := *a.Cinematography
		out.Cinematography = &c
	}
	if a.NarrativeElements != nil {
		n := *a.NarrativeElements
		out.NarrativeElements = &n
	}
	return out
}
