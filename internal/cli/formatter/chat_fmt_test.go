package formatter

import (
	"testing"

	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/stretchr/testify/assert"
)

func TestFormatReply_KindBadge(t *testing.T) {
	generated := stripANSI(FormatReply("**Expert Advice:**\n\nWater deeply twice a week during dry spells."))
	assert.Contains(t, generated, "AgriBot")
	assert.Contains(t, generated, "● AI")
	assert.Contains(t, generated, "Water deeply")

	knowledge := stripANSI(FormatReply("Soil management tips:\n• Test soil every 2-3 years"))
	assert.Contains(t, knowledge, "● KB")
	assert.Contains(t, knowledge, "• Test soil every 2-3 years")
}

func TestKindColor(t *testing.T) {
	assert.Equal(t, ColorYellow, KindColor(intelligence.KindGenerated))
	assert.Equal(t, ColorGreen, KindColor(intelligence.KindKnowledge))
}

func TestFormatHistory(t *testing.T) {
	assert.Contains(t, stripANSI(FormatHistory(nil)), "No messages yet.")

	got := stripANSI(FormatHistory([]intelligence.Turn{
		{Role: intelligence.RoleBot, Content: "Welcome to AgriBot!", Kind: intelligence.KindKnowledge},
		{Role: intelligence.RoleUser, Content: "tell me about rice"},
	}))
	assert.Contains(t, got, "Welcome to AgriBot!")
	assert.Contains(t, got, "you › tell me about rice")
}

func TestFormatWarningAndName(t *testing.T) {
	assert.Contains(t, stripANSI(FormatWarning("Could not load AI model")), "Could not load AI model")
	assert.Empty(t, FormatUserName(""))
	assert.Contains(t, stripANSI(FormatUserName("Raj")), "chatting with Raj")
	assert.Contains(t, stripANSI(FormatChatWelcome()), "/quit")
}
