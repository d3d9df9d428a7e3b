package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/agribot/internal/llm"
)

// GeneralWordLimit is the longest general query, in words, that gets a canned
// reply instead of a generation attempt.
const GeneralWordLimit = 5

var directUsageWords = regexp.MustCompile(`\b(use|usage|cook|prepare|eat)\b`)

const (
	pestChecklist = "Common pest management strategies:\n" +
		"• Use beneficial insects\n" +
		"• Apply neem oil\n" +
		"• Practice crop rotation\n" +
		"• Monitor regularly\n" +
		"• Use pheromone traps\n\n" +
		"Could you specify which pest you're dealing with?"

	diseaseChecklist = "General disease prevention:\n" +
		"• Use resistant varieties\n" +
		"• Ensure proper spacing\n" +
		"• Avoid overhead watering\n" +
		"• Practice crop rotation\n" +
		"• Remove infected plant material\n\n" +
		"What specific disease are you concerned about?"

	weatherChecklist = "Weather considerations for farming:\n" +
		"• Monitor forecasts regularly\n" +
		"• Plan irrigation based on rainfall\n" +
		"• Protect crops from extreme weather\n" +
		"• Adjust harvesting schedules\n\n" +
		"What weather condition are you asking about?"

	cropFertilizerTips = "General fertilizer tips:\n" +
		"• Soil test before application\n" +
		"• Apply in split doses\n" +
		"• Consider organic alternatives\n" +
		"• Follow local recommendations"

	fertilizerGuidelines = "General fertilizer guidelines:\n" +
		"• Test soil before application\n" +
		"• Use balanced NPK ratios\n" +
		"• Apply organic matter regularly\n" +
		"• Consider slow-release fertilizers\n" +
		"• Monitor plant response\n\n" +
		"Which crop are you fertilizing?"

	usageAskCrop = "I can help with how to use various crops. Please mention which crop you're asking about."

	generalClarification = "I can help with specific farming topics like crops, pests, or soil management. Could you clarify your question?"
)

// HandleCropInfo reports the facts for the first crop mentioned, or lists the
// known crops.
func (a *Assistant) HandleCropInfo(message string) string {
	name, ok := a.ExtractCrop(message)
	if !ok {
		return fmt.Sprintf("I have information about these crops: %s. Which one would you like to know about?",
			strings.Join(a.kb.CropNames(), ", "))
	}
	c, _ := a.kb.Crop(name)

	var b strings.Builder
	fmt.Fprintf(&b, "Here's information about %s:\n\n", capitalize(name))
	fmt.Fprintf(&b, "🌱 Season: %s\n", c.Season)
	fmt.Fprintf(&b, "💧 Water needs: %s\n", c.Water)
	fmt.Fprintf(&b, "🌍 Soil requirements: %s\n", c.Soil)
	fmt.Fprintf(&b, "🧪 Fertilizer: %s\n", c.Fertilizer)
	fmt.Fprintf(&b, "🦠 Common diseases: %s\n", strings.Join(c.Diseases, ", "))
	fmt.Fprintf(&b, "🐛 Common pests: %s\n", strings.Join(c.Pests, ", "))
	fmt.Fprintf(&b, "🍽️ Usage: %s\n", c.Usage)
	return b.String()
}

func (a *Assistant) HandlePestManagement(message string) string {
	pest, ok := a.ExtractPest(message)
	if !ok {
		return pestChecklist
	}
	solution, _ := a.kb.PestSolution(pest)
	return fmt.Sprintf("For %s management:\n%s\n\nAlways follow integrated pest management practices for best results.", pest, solution)
}

func (a *Assistant) HandleDiseaseManagement(message string) string {
	disease, ok := a.ExtractDisease(message)
	if !ok {
		return diseaseChecklist
	}
	solution, _ := a.kb.DiseaseSolution(disease)
	return fmt.Sprintf("For %s management:\n%s\n\nRemember to follow label instructions and maintain proper sanitation.", disease, solution)
}

func (a *Assistant) HandleWeatherAdvice(message string) string {
	condition, ok := a.ExtractWeather(message)
	if !ok {
		return weatherChecklist
	}
	advice, _ := a.kb.WeatherAdvice(condition)
	return fmt.Sprintf("For %s weather conditions:\n%s\n\nAlways monitor local weather forecasts for better planning.", condition, advice)
}

func (a *Assistant) HandleFertilizerAdvice(message string) string {
	name, ok := a.ExtractCrop(message)
	if !ok {
		return fertilizerGuidelines
	}
	c, _ := a.kb.Crop(name)
	return fmt.Sprintf("For %s, recommended fertilizer application is: %s\n\n%s", capitalize(name), c.Fertilizer, cropFertilizerTips)
}

// HandleSoilManagement returns the fixed soil checklist.
func (a *Assistant) HandleSoilManagement(string) string {
	items := a.kb.SoilChecklist()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return "Soil management tips:\n" + strings.Join(lines, "\n")
}

func (a *Assistant) HandleFarmingTips(string) string {
	return fmt.Sprintf("Here's a farming tip for you:\n💡 %s\n\nWould you like more specific advice on any farming topic?", a.RandomTip())
}

// HandleUsageInfo answers how-to questions about a crop. Plain usage questions
// come from the knowledge base, the rest try gen and fall back to a basic
// guide. gen may be nil.
func (a *Assistant) HandleUsageInfo(ctx context.Context, gen *Generator, message string) string {
	name, ok := a.ExtractCrop(message)
	if !ok {
		return usageAskCrop
	}
	c, _ := a.kb.Crop(name)
	title := capitalize(name)

	if directUsageWords.MatchString(strings.ToLower(message)) {
		return fmt.Sprintf("%s can be: %s", title, c.Usage)
	}

	if gen != nil {
		if reply, err := gen.Complete(ctx, llm.TaskUsage, UsagePrompt(message, name)); err == nil {
			return fmt.Sprintf("**Detailed Guide for %s:**\n\n%s", title, reply)
		}
	}

	return fmt.Sprintf("Basic guide for %s:\n"+
		"1. Planting: Sow in %s in %s\n"+
		"2. Watering: %s\n"+
		"3. Fertilizing: %s\n"+
		"4. Harvest: When mature (timing varies by variety)\n"+
		"5. Usage: %s", title, c.Season, c.Soil, c.Water, c.Fertilizer, c.Usage)
}

// HandleGeneralQuery answers messages no other handler claimed. Short ones get
// a canned clarification; longer ones try gen. gen may be nil.
func (a *Assistant) HandleGeneralQuery(ctx context.Context, gen *Generator, message string) string {
	if len(strings.Fields(message)) <= GeneralWordLimit {
		return pick(a, a.shortReplies())
	}

	if gen != nil {
		if reply, err := gen.Complete(ctx, llm.TaskGeneral, GeneralPrompt(message)); err == nil {
			return "**Expert Advice:**\n\n" + reply
		}
	}
	return generalClarification
}

func (a *Assistant) shortReplies() []string {
	return []string{
		"I can help with crop cultivation, pest control, and farming techniques. Could you be more specific?",
		"Are you asking about a particular crop? I have information about " + strings.Join(a.kb.CropNames(), ", "),
		"For detailed advice, please ask about a specific farming topic.",
	}
}

// Respond runs the dispatch pipeline for one message against s: name
// detection, intent classification, then the matching handler. A mentioned
// crop routes to crop info whatever the intent, except for usage questions.
func (a *Assistant) Respond(ctx context.Context, s *Session, message string) (string, Intent) {
	if name, ok := DetectName(message); ok {
		s.userName = name
		return fmt.Sprintf("Nice to meet you, %s! How can I assist you with your farming needs?", name), IntentGeneral
	}

	intent := ClassifyIntent(message)
	switch {
	case intent == IntentUsageInfo:
		return a.HandleUsageInfo(ctx, s.gen, message), intent
	case a.MentionsCrop(message):
		return a.HandleCropInfo(message), IntentCropInfo
	}

	switch intent {
	case IntentCropInfo:
		return a.HandleCropInfo(message), intent
	case IntentPestManagement:
		return a.HandlePestManagement(message), intent
	case IntentDiseaseManagement:
		return a.HandleDiseaseManagement(message), intent
	case IntentWeatherAdvice:
		return a.HandleWeatherAdvice(message), intent
	case IntentFertilizerAdvice:
		return a.HandleFertilizerAdvice(message), intent
	case IntentSoilManagement:
		return a.HandleSoilManagement(message), intent
	case IntentFarmingTips:
		return a.HandleFarmingTips(message), intent
	default:
		return a.HandleGeneralQuery(ctx, s.gen, message), IntentGeneral
	}
}
