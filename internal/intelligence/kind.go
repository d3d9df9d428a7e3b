package intelligence

import "strings"

// ResponseKind tells the presentation layer how to style a bot reply.
type ResponseKind string

const (
	KindKnowledge ResponseKind = "knowledge"
	KindGenerated ResponseKind = "generated"
)

var generatedPrefixes = []string{"**AI-Generated", "**Detailed Guide", "**Expert Advice"}

// ClassifyResponse derives the kind of a reply from its leading marker.
func ClassifyResponse(text string) ResponseKind {
	for _, p := range generatedPrefixes {
		if strings.HasPrefix(text, p) {
			return KindGenerated
		}
	}
	return KindKnowledge
}
