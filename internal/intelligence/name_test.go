package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectName(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"My name is Raj", "Raj", true},
		{"my name is raj", "Raj", true},
		{"Hi, I'm PRIYA", "Priya", true},
		{"I am Ken", "Ken", true},
		{"Please call me sam.", "Sam", true},
		{"What is the best season for rice?", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := DetectName(tt.message)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Introductions are matched anywhere, so ordinary sentences can be captured.
func TestDetectName_CapturesVerbAfterIAm(t *testing.T) {
	got, ok := DetectName("I'm growing rice")
	assert.True(t, ok)
	assert.Equal(t, "Growing", got)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Rice", capitalize("rice"))
	assert.Equal(t, "Élodie", capitalize("élodie"))
	assert.Equal(t, "", capitalize(""))
}
