package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	assert.Equal(t, KindGenerated, ClassifyResponse("**Expert Advice:**\n\nWater early."))
	assert.Equal(t, KindGenerated, ClassifyResponse("**Detailed Guide for Rice:**\n\n..."))
	assert.Equal(t, KindGenerated, ClassifyResponse("**AI-Generated answer"))
	assert.Equal(t, KindKnowledge, ClassifyResponse("Soil management tips:\n• Test soil"))
	assert.Equal(t, KindKnowledge, ClassifyResponse("Note: **Expert Advice** appears later"))
}
