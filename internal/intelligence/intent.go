package intelligence

import "strings"

// Intent labels a user message with the handler that should answer it.
type Intent string

const (
	IntentCropInfo          Intent = "crop_info"
	IntentPestManagement    Intent = "pest_management"
	IntentDiseaseManagement Intent = "disease_management"
	IntentWeatherAdvice     Intent = "weather_advice"
	IntentFertilizerAdvice  Intent = "fertilizer_advice"
	IntentFarmingTips       Intent = "farming_tips"
	IntentSoilManagement    Intent = "soil_management"
	IntentUsageInfo         Intent = "usage_info"
	IntentGeneral           Intent = "general"
)

// IntentRule pairs an intent with the keywords that select it.
type IntentRule struct {
	Intent   Intent
	Keywords []string
}

// IntentPriority is checked top to bottom and the first rule with a keyword
// contained in the message wins. Keywords are matched as substrings, so
// "help" selects farming tips even when a later topic is also mentioned.
var IntentPriority = []IntentRule{
	{IntentCropInfo, []string{"crop", "plant", "grow", "cultivation"}},
	{IntentPestManagement, []string{"pest", "insect", "bug", "damage"}},
	{IntentDiseaseManagement, []string{"disease", "fungus", "infection", "sick"}},
	{IntentWeatherAdvice, []string{"weather", "rain", "drought", "temperature"}},
	{IntentFertilizerAdvice, []string{"fertilizer", "nutrient", "feeding", "npk"}},
	{IntentFarmingTips, []string{"tip", "advice", "suggestion", "help"}},
	{IntentSoilManagement, []string{"soil", "ph", "organic", "compost"}},
	{IntentUsageInfo, []string{"use", "usage", "how to", "prepare", "cook"}},
}

// ClassifyIntent maps a message to exactly one intent. Messages matching no
// rule are IntentGeneral.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range IntentPriority {
		if containsAny(lower, rule.Keywords) {
			return rule.Intent
		}
	}
	return IntentGeneral
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
