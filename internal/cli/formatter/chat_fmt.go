package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/charmbracelet/lipgloss"
)

// FormatChatWelcome renders the banner shown when a chat starts.
func FormatChatWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleGreen.Render("  🌾 AgriBot") + StyleDim.Render(" your intelligent agricultural assistant"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────────────────────") + "\n\n")
	b.WriteString(StyleDim.Render("  Ask anything about crops, pests, diseases, weather or soil.") + "\n")
	b.WriteString(StyleDim.Render("  Type /tip for a farming tip, /history to review, /quit to exit.") + "\n\n")
	return b.String()
}

// FormatReply renders a bot reply with a left accent bar colored by its kind.
func FormatReply(text string) string {
	kind := intelligence.ClassifyResponse(text)
	bar := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(KindColor(kind)).
		PaddingLeft(1)

	label := StyleBold.Render(intelligence.BotName) + " " + KindBadge(kind)
	return bar.Render(label + "\n" + wrapText(text, textWrapWidth))
}

// FormatUserTurn renders a line typed by the user.
func FormatUserTurn(text string) string {
	return StyleBlue.Render("you") + StyleDim.Render(" › ") + text
}

// FormatWarning renders a non-fatal notice, such as a model that failed to load.
func FormatWarning(text string) string {
	return StyleYellow.Render("  ⚠️  ") + Dim(text)
}

// FormatHistory renders every turn of a conversation in order.
func FormatHistory(turns []intelligence.Turn) string {
	if len(turns) == 0 {
		return Dim("  No messages yet.")
	}
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Role == intelligence.RoleUser {
			parts = append(parts, FormatUserTurn(t.Content))
			continue
		}
		parts = append(parts, FormatReply(t.Content))
	}
	return strings.Join(parts, "\n\n")
}

// FormatUserName renders the remembered name line, if any.
func FormatUserName(name string) string {
	if name == "" {
		return ""
	}
	return Dim(fmt.Sprintf("  chatting with %s", name))
}
