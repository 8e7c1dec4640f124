package domain

import (
	"fmt"
	"strings"
)

// Style は画像の画風プリセットです。値は UI に表示されるラベルそのものです。
type Style string

const (
	StylePhotorealistic      Style = "Photorealistic / Cinematic"
	StyleMedicalIllustration Style = "Medical Concept Art"
	StyleCyberpunk           Style = "Cyberpunk / High Tech"
	StyleNeoNoir             Style = "Neo Noir / Mystery"
	StyleEthereal            Style = "Ethereal / Fantasy"
	StyleRoughSketch         Style = "Rough Concept Sketch"
)

var styles = []Style{
	StylePhotorealistic,
	StyleMedicalIllustration,
	StyleCyberpunk,
	StyleNeoNoir,
	StyleEthereal,
	StyleRoughSketch,
}

// Styles は選択可能な画風を表示順で返します。
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Valid は列挙値に含まれるかを返します。
func (s Style) Valid() bool {
	for _, v := range styles {
		if v == s {
			return true
		}
	}
	return false
}

// ParseStyle はラベル文字列を Style に変換します。前後の空白は無視します。
func ParseStyle(raw string) (Style, error) {
	s := Style(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, raw)
	}
	return s, nil
}

// ArmorStyle はスライダーで選ぶ装備の種類です。
type ArmorStyle string

const (
	ArmorSciFi    ArmorStyle = "Sci-Fi"
	ArmorMedieval ArmorStyle = "Medieval"
	ArmorModern   ArmorStyle = "Modern"
)

// ArmorOptions はスライダーの並び順です。
func ArmorOptions() []ArmorStyle {
	return []ArmorStyle{ArmorSciFi, ArmorMedieval, ArmorModern}
}

// ParseArmor は空文字を「未指定」として受け付けます。
func ParseArmor(raw string) (ArmorStyle, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, a := range ArmorOptions() {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: armor %q", ErrInvalidOverride, raw)
}

// Environment はスライダーで選ぶ背景です。
type Environment string

const (
	EnvBattlefield   Environment = "Battlefield"
	EnvRainyTokyo    Environment = "Rainy Tokyo"
	EnvSnowyMountain Environment = "Snowy Mountain"
)

// EnvironmentOptions はスライダーの並び順です。
func EnvironmentOptions() []Environment {
	return []Environment{EnvBattlefield, EnvRainyTokyo, EnvSnowyMountain}
}

// ParseEnvironment は空文字を「未指定」として受け付けます。
func ParseEnvironment(raw string) (Environment, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, e := range EnvironmentOptions() {
		if string(e) == raw {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: environment %q", ErrInvalidOverride, raw)
}

// SamplePrompts は「ランダム」ボタン用の入力例です。
var SamplePrompts = []string{
	"30-year-old female programmer working late in a cafe, tired but focused.",
	"Weathered Viking warrior standing on a snowy peak, battle scars.",
	"Futuristic field medic in a chaotic battlefield triage, high tech gear.",
	"Elderly jazz musician playing saxophone in a smoky bar, melancholic.",
}
