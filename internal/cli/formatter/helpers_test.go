package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"seconds ago", now.Add(-10 * time.Second), "Just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}

	old := now.Add(-72 * time.Hour)
	assert.Equal(t, old.Local().Format("Jan 2, 15:04"), HumanTimestampFrom(old, now))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Rice", Title("rice"))
	assert.Equal(t, "Stem borer", Title("stem borer"))
	assert.Equal(t, "", Title(""))
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", got)

	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 10))
	assert.Equal(t, "trimmed", wrapText("  trimmed  ", 0))
}

func TestIndentWrapped(t *testing.T) {
	got := indentWrapped("alpha beta", 2, 5)
	assert.Equal(t, "  alpha\n  beta", got)
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	// Should contain rounded border characters
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderProgress(0.5, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderProgress(1.5, 10)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(-1, 1)))
}
