package intelligence

import "fmt"

const (
	userTag      = "<|user|>"
	assistantTag = "<|assistant|>"
)

const usagePromptTemplate = userTag + `
As an agricultural expert, provide detailed step-by-step instructions about: %s
Include planting, growing, harvesting, and usage information for %s.
Make the response practical and suitable for farmers.
` + assistantTag + "\n"

const generalPromptTemplate = userTag + `
As an agricultural expert, answer this farming question in detail: %s
Provide practical, actionable advice suitable for farmers.
Include relevant examples if possible.
` + assistantTag + "\n"

// UsagePrompt frames a how-to question about crop.
func UsagePrompt(message, crop string) string {
	return fmt.Sprintf(usagePromptTemplate, message, crop)
}

// GeneralPrompt frames an open-ended farming question.
func GeneralPrompt(message string) string {
	return fmt.Sprintf(generalPromptTemplate, message)
}
