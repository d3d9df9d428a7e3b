package intelligence

import "strings"

// firstMention returns the first key that occurs as a substring of the
// lowercased message. Keys are scanned in the order given.
func firstMention(keys []string, message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, k := range keys {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

// ExtractCrop returns the first known crop mentioned in message. Matching is
// by substring, so "cornflower" resolves to corn.
func (a *Assistant) ExtractCrop(message string) (string, bool) {
	return firstMention(a.kb.CropNames(), message)
}

// ExtractPest returns the first pest with a known remedy mentioned in message.
func (a *Assistant) ExtractPest(message string) (string, bool) {
	return firstMention(a.kb.PestNames(), message)
}

// ExtractDisease returns the first disease with a known remedy mentioned in message.
func (a *Assistant) ExtractDisease(message string) (string, bool) {
	return firstMention(a.kb.DiseaseNames(), message)
}

// ExtractWeather returns the first weather condition mentioned in message.
func (a *Assistant) ExtractWeather(message string) (string, bool) {
	return firstMention(a.kb.WeatherConditions(), message)
}

// MentionsCrop reports whether any known crop appears in message.
func (a *Assistant) MentionsCrop(message string) bool {
	_, ok := a.ExtractCrop(message)
	return ok
}
