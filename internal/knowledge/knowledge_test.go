package knowledge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_KeyOrder(t *testing.T) {
	kb := Default()

	if diff := cmp.Diff([]string{"rice", "wheat", "corn", "tomato", "potato"}, kb.CropNames()); diff != "" {
		t.Errorf("crop order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"aphids", "whitefly", "stem borer", "cutworms", "termites", "fall armyworm"}, kb.PestNames()); diff != "" {
		t.Errorf("pest order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"blight", "rust", "bacterial wilt", "blast", "smut"}, kb.DiseaseNames()); diff != "" {
		t.Errorf("disease order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rainy", "dry", "hot", "cold", "windy"}, kb.WeatherConditions()); diff != "" {
		t.Errorf("weather order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_RiceRecord(t *testing.T) {
	rice, ok := Default().Crop("rice")
	require.True(t, ok)

	assert.Equal(t, "Kharif (June-November)", rice.Season)
	assert.Equal(t, "NPK 120:60:40 kg/ha", rice.Fertilizer)
	assert.Equal(t, []string{"Blast", "Brown spot", "Bacterial blight"}, rice.Diseases)
	assert.Equal(t, []string{"Stem borer", "Brown planthopper", "Leaf folder"}, rice.Pests)
}

func TestDefault_Lookups(t *testing.T) {
	kb := Default()

	sol, ok := kb.PestSolution("aphids")
	require.True(t, ok)
	assert.Equal(t, "Use neem oil spray or introduce ladybugs. Apply insecticidal soap.", sol)

	_, ok = kb.DiseaseSolution("rust")
	assert.True(t, ok)

	adv, ok := kb.WeatherAdvice("cold")
	require.True(t, ok)
	assert.Contains(t, adv, "frost")

	_, ok = kb.Crop("banana")
	assert.False(t, ok)
	_, ok = kb.PestSolution("Aphids")
	assert.False(t, ok, "keys are case-sensitive lowercase")

	assert.Len(t, kb.Tips(), 8)
	assert.Len(t, kb.SoilChecklist(), 7)
	assert.Len(t, kb.Prevention().Weather, 5)
}

func TestParse_MinimalDocument(t *testing.T) {
	kb, err := Parse([]byte(`crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
tips: [a]
soil: [b]
prevention: {pests: [c], diseases: [d], weather: [e]}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, kb.SoilChecklist())
	assert.Equal(t, []string{"d"}, kb.Prevention().Diseases)
}

func TestDefault_ReturnsCopies(t *testing.T) {
	kb := Default()

	rice, _ := kb.Crop("rice")
	rice.Diseases[0] = "mutated"
	names := kb.CropNames()
	names[0] = "mutated"
	tips := kb.Tips()
	tips[0] = "mutated"

	again, _ := kb.Crop("rice")
	assert.Equal(t, "Blast", again.Diseases[0])
	assert.Equal(t, "rice", kb.CropNames()[0])
	assert.NotEqual(t, "mutated", kb.Tips()[0])
}

func TestDefault_CropPestsAndDiseasesAreNonEmpty(t *testing.T) {
	kb := Default()
	for _, name := range kb.CropNames() {
		c, ok := kb.Crop(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, c.Diseases, name)
		assert.NotEmpty(t, c.Pests, name)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no crops",
			doc:  "tips: [a]\n",
			want: "no crops",
		},
		{
			name: "uppercase crop key",
			doc: `crops:
  - {name: Rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
tips: [a]
`,
			want: "must be lowercase",
		},
		{
			name: "duplicate crop key",
			doc: `crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
tips: [a]
`,
			want: "duplicate crop",
		},
		{
			name: "missing crop fields",
			doc: `crops:
  - {name: rice, season: s}
tips: [a]
`,
			want: "missing water",
		},
		{
			name: "empty pest text",
			doc: `crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
pests:
  - {name: aphids, text: ""}
tips: [a]
`,
			want: "empty text",
		},
		{
			name: "no tips",
			doc: `crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
`,
			want: "no farming tips",
		},
		{
			name: "empty soil checklist",
			doc: `crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
tips: [a]
soil: []
`,
			want: "no soil checklist",
		},
		{
			name: "missing prevention checklist",
			doc: `crops:
  - {name: rice, season: s, water: w, soil: s, fertilizer: f, diseases: [d], pests: [p], usage: u}
tips: [a]
soil: [b]
prevention:
  pests: [c]
  weather: [e]
`,
			want: "no diseases prevention checklist",
		},
		{
			name: "malformed yaml",
			doc:  "crops: [",
			want: "decoding knowledge document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
