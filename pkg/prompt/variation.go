package prompt

// Variation はカメラアングルの指定です。
type Variation struct {
	Name       string
	Descriptor string
}

// variations の順序がそのまま出力画像の並び順になる。
var variations = []Variation{
	{Name: "frontal", Descriptor: "Cinematic Frontal Portrait, direct eye contact"},
	{Name: "three-quarter", Descriptor: "Three-Quarter Angle (45 degrees), dynamic pose"},
	{Name: "profile", Descriptor: "Side Profile (90 degrees), dramatic silhouette"},
	{Name: "close-up", Descriptor: "Close-up Detail Shot, focus on eyes and expression"},
}

// Variations は4種のバリエーションを固定順で返します。
func Variations() []Variation {
	out := make([]Variation, len(variations))
	copy(out, variations)
	return out
}
