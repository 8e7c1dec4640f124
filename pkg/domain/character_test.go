package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalysis() *CharacterAnalysis {
	return &CharacterAnalysis{
		VisualProfile:     &VisualProfile{FacialFeatures: "tired eyes", BodyConstitution: "ectomorph"},
		Cinematography:    &Cinematography{LightingSetup: "warm cafe tungsten"},
		NarrativeElements: &NarrativeElements{ClothingTexture: "wool hoodie"},
		RefinedPrompt:     "female programmer in a cafe",
	}
}

func TestCharacterAnalysis_Validate(t *testing.T) {
	t.Run("4フィールドが揃っていれば成功", func(t *testing.T) {
		assert.NoError(t, sampleAnalysis().Validate())
	})

	t.Run("JSON で欠けたフィールドを検出する", func(t *testing.T) {
		var a CharacterAnalysis
		raw := `{"visual_profile":{},"cinematography":{},"refined_prompt":"x"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &a))

		err := a.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "narrative_elements")
	})

	t.Run("refined_prompt が空ならエラー", func(t *testing.T) {
		a := sampleAnalysis()
		a.RefinedPrompt = ""
		assert.Error(t, a.Validate())
	})
}

func TestGeneratedResult_Clone(t *testing.T) {
	orig := &GeneratedResult{
		ID:        "r1",
		ImageURLs: []string{"a", "b", "c", "d"},
		Analysis:  sampleAnalysis(),
		Style:     StyleCyberpunk,
		Timestamp: time.Unix(100, 0),
		Overrides: &GenerationOverrides{Armor: ArmorSciFi},
	}

	c := orig.Clone()
	c.ImageURLs[0] = "changed"
	c.Analysis.NarrativeElements.ClothingTexture = "changed"
	c.Overrides.Armor = ArmorModern

	assert.Equal(t, "a", orig.ImageURLs[0])
	assert.Equal(t, "wool hoodie", orig.Analysis.NarrativeElements.ClothingTexture)
	assert.Equal(t, ArmorSciFi, orig.Overrides.Armor)
	assert.Nil(t, (*GeneratedResult)(nil).Clone())
}

func TestLoadingState_InFlight(t *testing.T) {
	assert.True(t, LoadingState{Status: StatusAnalyzing}.InFlight())
	assert.True(t, LoadingState{Status: StatusGenerating}.InFlight())
	assert.False(t, LoadingState{Status: StatusIdle}.InFlight())
	assert.False(t, LoadingState{Status: StatusComplete}.InFlight())
	assert.False(t, LoadingState{Status: StatusError}.InFlight())
}

func TestGenerationOverrides_IsZero(t *testing.T) {
	var nilOverrides *GenerationOverrides
	assert.True(t, nilOverrides.IsZero())
	assert.True(t, (&GenerationOverrides{}).IsZero())
	assert.False(t, (&GenerationOverrides{Environment: EnvBattlefield}).IsZero())
}
