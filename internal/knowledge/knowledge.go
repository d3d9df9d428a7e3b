// Package knowledge holds the static agricultural facts AgriBot answers from.
//
// The data is an embedded YAML document parsed once into an immutable Base.
// Lookups by key are O(1); enumeration returns keys in document order, which
// entity extraction depends on.
package knowledge

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var embedded []byte

// Crop is the stored profile for one crop.
type Crop struct {
	Name       string   `yaml:"name"`
	Season     string   `yaml:"season"`
	Water      string   `yaml:"water"`
	Soil       string   `yaml:"soil"`
	Fertilizer string   `yaml:"fertilizer"`
	Diseases   []string `yaml:"diseases"`
	Pests      []string `yaml:"pests"`
	Usage      string   `yaml:"usage"`
}

// Entry is a keyed advisory text: a pest remedy, disease remedy or weather advisory.
type Entry struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Prevention holds the fixed checklists shown on the reference pages.
type Prevention struct {
	Pests    []string `yaml:"pests"`
	Diseases []string `yaml:"diseases"`
	Weather  []string `yaml:"weather"`
}

type document struct {
	Crops      []Crop     `yaml:"crops"`
	Pests      []Entry    `yaml:"pests"`
	Diseases   []Entry    `yaml:"diseases"`
	Weather    []Entry    `yaml:"weather"`
	Tips       []string   `yaml:"tips"`
	Soil       []string   `yaml:"soil"`
	Prevention Prevention `yaml:"prevention"`
}

// Base is a read-only view over a parsed knowledge document.
type Base struct {
	crops    []Crop
	cropIdx  map[string]int
	pests    table
	diseases table
	weather  table
	tips     []string
	soil     []string
	prev     Prevention
}

// table is an ordered key->text map.
type table struct {
	keys []string
	text map[string]string
}

func newTable(entries []Entry) table {
	t := table{keys: make([]string, 0, len(entries)), text: make(map[string]string, len(entries))}
	for _, e := range entries {
		t.keys = append(t.keys, e.Name)
		t.text[e.Name] = e.Text
	}
	return t
}

func (t table) get(key string) (string, bool) {
	v, ok := t.text[key]
	return v, ok
}

var loadDefault = sync.OnceValue(func() *Base {
	b, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded document invalid: %v", err))
	}
	return b
})

// Default returns the embedded knowledge base. It is parsed on first call.
func Default() *Base {
	return loadDefault()
}

// Parse decodes and validates a knowledge document.
func Parse(data []byte) (*Base, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding knowledge document: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}

	b := &Base{
		crops:    doc.Crops,
		cropIdx:  make(map[string]int, len(doc.Crops)),
		pests:    newTable(doc.Pests),
		diseases: newTable(doc.Diseases),
		weather:  newTable(doc.Weather),
		tips:     doc.Tips,
		soil:     doc.Soil,
		prev:     doc.Prevention,
	}
	for i, c := range doc.Crops {
		b.cropIdx[c.Name] = i
	}
	return b, nil
}

// Crop returns the profile for name. Names are lowercase.
func (b *Base) Crop(name string) (Crop, bool) {
	i, ok := b.cropIdx[name]
	if !ok {
		return Crop{}, false
	}
	return cloneCrop(b.crops[i]), true
}

// CropNames returns crop keys in document order.
func (b *Base) CropNames() []string {
	names := make([]string, len(b.crops))
	for i, c := range b.crops {
		names[i] = c.Name
	}
	return names
}

// PestSolution returns the remediation text for a pest key.
func (b *Base) PestSolution(name string) (string, bool) { return b.pests.get(name) }

// PestNames returns pest keys in document order.
func (b *Base) PestNames() []string { return clone(b.pests.keys) }

// DiseaseSolution returns the remediation text for a disease key.
func (b *Base) DiseaseSolution(name string) (string, bool) { return b.diseases.get(name) }

// DiseaseNames returns disease keys in document order.
func (b *Base) DiseaseNames() []string { return clone(b.diseases.keys) }

// WeatherAdvice returns the advisory text for a weather condition key.
func (b *Base) WeatherAdvice(name string) (string, bool) { return b.weather.get(name) }

// WeatherConditions returns weather keys in document order.
func (b *Base) WeatherConditions() []string { return clone(b.weather.keys) }

// Tips returns the farming tips in document order.
func (b *Base) Tips() []string { return clone(b.tips) }

// SoilChecklist returns the soil management checklist.
func (b *Base) SoilChecklist() []string { return clone(b.soil) }

// Prevention returns the reference-page checklists.
func (b *Base) Prevention() Prevention {
	return Prevention{
		Pests:    clone(b.prev.Pests),
		Diseases: clone(b.prev.Diseases),
		Weather:  clone(b.prev.Weather),
	}
}

func cloneCrop(c Crop) Crop {
	c.Diseases = clone(c.Diseases)
	c.Pests = clone(c.Pests)
	return c
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func validate(doc *document) error {
	if len(doc.Crops) == 0 {
		return fmt.Errorf("knowledge document has no crops")
	}
	seen := make(map[string]bool, len(doc.Crops))
	for i, c := range doc.Crops {
		if err := validateKey("crop", c.Name, seen); err != nil {
			return fmt.Errorf("crops[%d]: %w", i, err)
		}
		missing := missingCropFields(c)
		if len(missing) > 0 {
			return fmt.Errorf("crop %q: missing %s", c.Name, strings.Join(missing, ", "))
		}
	}

	sections := []struct {
		kind    string
		entries []Entry
	}{
		{"pest", doc.Pests},
		{"disease", doc.Diseases},
		{"weather", doc.Weather},
	}
	for _, s := range sections {
		seen := make(map[string]bool, len(s.entries))
		for i, e := range s.entries {
			if err := validateKey(s.kind, e.Name, seen); err != nil {
				return fmt.Errorf("%ss[%d]: %w", s.kind, i, err)
			}
			if strings.TrimSpace(e.Text) == "" {
				return fmt.Errorf("%s %q: empty text", s.kind, e.Name)
			}
		}
	}

	if len(doc.Tips) == 0 {
		return fmt.Errorf("knowledge document has no farming tips")
	}
	if len(doc.Soil) == 0 {
		return fmt.Errorf("knowledge document has no soil checklist")
	}
	checklists := []struct {
		kind  string
		items []string
	}{
		{"pests", doc.Prevention.Pests},
		{"diseases", doc.Prevention.Diseases},
		{"weather", doc.Prevention.Weather},
	}
	for _, c := range checklists {
		if len(c.items) == 0 {
			return fmt.Errorf("knowledge document has no %s prevention checklist", c.kind)
		}
	}
	return nil
}

func validateKey(kind, key string, seen map[string]bool) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%s name is empty", kind)
	case key != strings.ToLower(key):
		return fmt.Errorf("%s name %q must be lowercase", kind, key)
	case seen[key]:
		return fmt.Errorf("duplicate %s name %q", kind, key)
	}
	seen[key] = true
	return nil
}

func missingCropFields(c Crop) []string {
	var missing []string
	check := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	check("season", c.Season)
	check("water", c.Water)
	check("soil", c.Soil)
	check("fertilizer", c.Fertilizer)
	check("usage", c.Usage)
	if len(c.Diseases) == 0 {
		missing = append(missing, "diseases")
	}
	if len(c.Pests) == 0 {
		missing = append(missing, "pests")
	}
	return missing
}
