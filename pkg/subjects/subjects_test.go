package subjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{
			name:     "two subjects plain",
			message:  "사회문화랑 경제로 할게요",
			expected: []string{"사회문화", "경제"},
		},
		{
			name:     "spaces inside subject name",
			message:  "생활과 윤리 하고 지구 과학1 선택",
			expected: []string{"생활과윤리", "지구과학1"},
		},
		{
			name:     "more than two mentioned, capped at two",
			message:  "사회문화 경제 세계사 전부요",
			expected: []string{"사회문화", "경제"},
		},
		{
			name:     "single subject",
			message:  "물리학1이요",
			expected: []string{"물리학1"},
		},
		{
			name:     "no subject mentioned",
			message:  "아직 고민중이에요",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMessage(tt.message))
		})
	}
}

func TestNormalize(t *testing.T) {
	// Full-width digits and letters fold to their narrow forms.
	assert.Equal(t, "물리학1", Normalize("물리학１"))
	assert.Equal(t, "abc", Normalize("ＡＢＣ"))
	// Ideographic space is stripped like a normal space.
	assert.Equal(t, "세계지리", Normalize("세계　지리"))
}

func TestValidCount(t *testing.T) {
	assert.False(t, ValidCount(nil, RequiredCount))
	assert.False(t, ValidCount([]string{"경제"}, RequiredCount))
	assert.True(t, ValidCount([]string{"경제", "세계사"}, RequiredCount))
	assert.True(t, ValidCount([]string{"경제", "세계사", "한국지리"}, RequiredCount))
}

func TestListText(t *testing.T) {
	text := ListText()
	assert.Contains(t, text, "사회문화")
	assert.Contains(t, text, "생명과학2")
}
