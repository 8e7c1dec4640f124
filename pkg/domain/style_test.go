package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	t.Run("表示ラベルをそのまま受け付ける", func(t *testing.T) {
		for _, s := range Styles() {
			got, err := ParseStyle(string(s))
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	})

	t.Run("前後の空白は無視する", func(t *testing.T) {
		got, err := ParseStyle("  Neo Noir / Mystery ")
		require.NoError(t, err)
		assert.Equal(t, StyleNeoNoir, got)
	})

	t.Run("未知の画風はエラー", func(t *testing.T) {
		_, err := ParseStyle("Watercolor")
		assert.True(t, errors.Is(err, ErrInvalidStyle))
	})
}

func TestStyles_ReturnsCopy(t *testing.T) {
	s := Styles()
	require.Len(t, s, 6)
	s[0] = "mutated"
	assert.Equal(t, StylePhotorealistic, Styles()[0])
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		armor   string
		env     string
		wantA   ArmorStyle
		wantE   Environment
		wantErr bool
	}{
		{"未指定", "", "", "", "", false},
		{"両方指定", "Medieval", "Rainy Tokyo", ArmorMedieval, EnvRainyTokyo, false},
		{"不正な装備", "Plastic", "", "", "", true},
		{"不正な背景", "", "Mars", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, errA := ParseArmor(tt.armor)
			e, errE := ParseEnvironment(tt.env)
			if tt.wantErr {
				err := errors.Join(errA, errE)
				assert.ErrorIs(t, err, ErrInvalidOverride)
				return
			}
			require.NoError(t, errA)
			require.NoError(t, errE)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantE, e)
		})
	}
}
