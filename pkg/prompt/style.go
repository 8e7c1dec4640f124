package prompt

import "github.com/shouni/hyperreal-character-studio/pkg/domain"

// styleKeywords は画風ごとに画像プロンプトの先頭へ付与するキーワードです。
var styleKeywords = map[domain.Style]string{
	domain.StylePhotorealistic:      "Shot on ARRI Alexa LF, 85mm lens, f/1.8, cinematic lighting, ultra-detailed skin texture, subsurface scattering, hyper-realistic, 8k resolution, raw photo.",
	domain.StyleMedicalIllustration: "High-end medical illustration, anatomical precision, clean neutral background, detailed muscle definition, soft studio lighting, clinical aesthetic, highly detailed rendering.",
	domain.StyleCyberpunk:           "Neon lighting, chromatic aberration, high tech implants, rain-slicked surfaces, volumetric fog, futuristic fashion, synthwave palette, ray tracing.",
	domain.StyleNeoNoir:             "Chiaroscuro lighting, high contrast, film grain, dramatic shadows, muted colors, smoke, moody atmosphere, cinematic masterpiece.",
	domain.StyleEthereal:            "Soft focus, dreamlike atmosphere, particle effects, divine lighting, pastel colors, flowing fabrics, intricate details, fantasy concept art.",
	domain.StyleRoughSketch:         "Concept art style, loose brushwork, charcoal textures, artistic lighting, expressive strokes, detailed focal point, neutral canvas background.",
}

// StyleKeywords は画風に対応するキーワードを返します。未知の画風では false を返します。
func StyleKeywords(style domain.Style) (string, bool) {
	kw, ok := styleKeywords[style]
	return kw, ok
}

// QualitySuffix はすべての画像プロンプトの末尾に付く品質キーワードです。
const QualitySuffix = "(masterpiece), (best quality), (ultra-detailed), (photorealistic:1.4), (8k), (hdr)."
