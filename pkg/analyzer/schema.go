package analyzer

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

const systemInstructionTemplate = `
You are a world-class Concept Art Director and Medical Illustrator.
Your task is to take a simple character description and expand it into a highly detailed technical profile.

1. Analyze the character for anatomical accuracy, lighting, and narrative details.
2. Create a 'refined_prompt' that is optimized for image generation.
   - It MUST be in English.
   - It MUST include keywords for texture, lighting, and camera settings.
   - It MUST align with the requested style: %s.
   - Do not include markdown code blocks in the string.
`

func systemInstruction(style domain.Style) string {
	return fmt.Sprintf(systemInstructionTemplate, style)
}

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func objectOf(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = stringField("")
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

// responseSchema は domain.CharacterAnalysis の JSON タグと一致させること。
func responseSchema() *genai.Schema {
	visual := objectOf("age_range", "ethnicity_archetype", "facial_features", "distinctive_marks")
	visual.Properties["body_constitution"] = stringField("Medical description of build (e.g., Ectomorph, Hypertrophic)")

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"visual_profile":     visual,
			"cinematography":     objectOf("lighting_setup", "color_grading", "camera_angle", "lens_choice"),
			"narrative_elements": objectOf("expression_micro_details", "clothing_texture", "environmental_context", "current_mood"),
			"refined_prompt":     stringField("The final prompt to send to the image generator."),
		},
		Required: []string{"visual_profile", "cinematography", "narrative_elements", "refined_prompt"},
	}
}
