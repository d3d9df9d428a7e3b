package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agribot/internal/knowledge"
)

// FormatCropPage renders the full reference page for one crop.
func FormatCropPage(name string, c knowledge.Crop) string {
	var b strings.Builder

	b.WriteString(Header(Title(name) + " Details"))
	b.WriteString("\n")
	writeField(&b, "Growing Season", c.Season)
	writeField(&b, "Water Requirements", c.Water)
	writeField(&b, "Soil Type", c.Soil)
	writeField(&b, "Fertilizer Recommendation", c.Fertilizer)

	b.WriteString("\n")
	b.WriteString(Header("Common Issues"))
	b.WriteString("\n")
	b.WriteString("  " + Bold("Diseases:") + "\n")
	writeBullets(&b, c.Diseases)
	b.WriteString("  " + Bold("Pests:") + "\n")
	writeBullets(&b, c.Pests)

	b.WriteString("\n")
	b.WriteString(Header("Usage"))
	b.WriteString("\n")
	b.WriteString(indentWrapped(c.Usage, 2, textWrapWidth))

	return RenderBox("🌱 Crop Information", b.String())
}

// FormatRemedyPage renders a pest, disease or weather page: the remedy text
// followed by a titled list of general recommendations.
func FormatRemedyPage(title, heading, text, listTitle string, items []string) string {
	var b strings.Builder

	b.WriteString(Header(heading))
	b.WriteString("\n")
	b.WriteString(indentWrapped(text, 2, textWrapWidth))
	b.WriteString("\n\n")
	b.WriteString(Header(listTitle))
	b.WriteString("\n")
	writeBullets(&b, items)

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatPestPage renders the page for one pest.
func FormatPestPage(name, solution string, prevention []string) string {
	return FormatRemedyPage("🐛 Pest Management", "Managing "+Title(name), solution, "Prevention Tips", prevention)
}

// FormatDiseasePage renders the page for one disease.
func FormatDiseasePage(name, solution string, prevention []string) string {
	return FormatRemedyPage("🦠 Disease Management", "Managing "+Title(name), solution, "Prevention Tips", prevention)
}

// FormatWeatherPage renders the page for one weather condition.
func FormatWeatherPage(condition, advice string, recommendations []string) string {
	return FormatRemedyPage("⛅ Weather Advice", fmt.Sprintf("Farming in %s Conditions", Title(condition)), advice, "Additional Recommendations", recommendations)
}

// FormatTip renders a standalone farming tip.
func FormatTip(tip string) string {
	return StyleYellow.Render("💡 Farming Tip: ") + tip
}

// FormatCropList renders the supported crops line.
func FormatCropList(names []string) string {
	return Header("Supported Crops") + "\n  " + strings.Join(names, ", ")
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", Bold(label+":"), value)
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "  %s %s\n", StyleGreen.Render("-"), item)
	}
}
