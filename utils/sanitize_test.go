package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"TrimsSurroundingWhitespace", "  Lucky Spin  ", "Lucky Spin"},
		{"DropsControlCharacters", "Lucky\tSpin\x00Casino\r\n", "LuckySpinCasino"},
		{"EscapesHTML", `<script>alert("hi")</script>`, "&lt;script&gt;alert(&#34;hi&#34;)&lt;/script&gt;"},
		{"EscapesAmpersand", "Bet & Win", "Bet &amp; Win"},
		{"KeepsUnicode", "Kasino Größe", "Kasino Größe"},
		{"EmptyIn", "", ""},
		{"WhitespaceOnly", "   \t\n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	t.Run("DropsElementsThatSanitizeToEmpty", func(t *testing.T) {
		out := SanitizeSlice([]string{" High ", "", "   ", "\x00", "Medium"})
		assert.Equal(t, []string{"High", "Medium"}, out)
	})

	t.Run("EmptyInputGivesEmptyNonNilSlice", func(t *testing.T) {
		out := SanitizeSlice(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"PercentEscaped", "50% bonus", `50\% bonus`},
		{"UnderscoreEscaped", "free_spins", `free\_spins`},
		{"BackslashEscapedFirst", `c:\games`, `c:\\games`},
		{"AllWildcardsTogether", `50%_bonus\`, `50\%\_bonus\\`},
		{"PlainTextUntouched", "royal casino", "royal casino"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.input))
		})
	}
}
