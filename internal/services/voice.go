package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// TriggerWeatherSuggestion marks a voice result built from the weather suggestion set
const TriggerWeatherSuggestion = "weather-suggestion"

const prefixRunes = 3

var quantityPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|kilos?|किलो|grams?|ग्राम|lit(?:er|re)s?|लीटर|pieces?|पीस)`)

var unitNames = map[string]string{
	"kg": "kg", "kilo": "kg", "kilos": "kg", "किलो": "kg",
	"gram": "gram", "grams": "gram", "ग्राम": "gram",
	"liter": "liter", "liters": "liter", "litre": "liter", "litres": "liter", "लीटर": "liter",
	"piece": "piece", "pieces": "piece", "पीस": "piece",
}

var triggerPhrases = []string{
	"what should i buy",
	"what to buy",
	"आज क्या खरीदूं",
	"क्या खरीदना चाहिए",
}

// QuantityHint is a spoken "<number> <unit>" expression
type QuantityHint struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CartQuantity converts the hint to a whole cart quantity.
// Grams count as a single unit; everything else rounds up.
func (q QuantityHint) CartQuantity() int {
	if q.Unit == "gram" {
		return 1
	}
	n := int(math.Ceil(q.Amount))
	if n < 1 {
		return 1
	}
	return n
}

func (q QuantityHint) String() string {
	return strconv.FormatFloat(q.Amount, 'f', -1, 64) + " " + q.Unit
}

// VoiceMatch is a catalog item recognised in an utterance
type VoiceMatch struct {
	Item     models.CatalogItem `json:"item"`
	Quantity *QuantityHint      `json:"quantity,omitempty"`
}

// VoiceResult is the outcome of matching one utterance
type VoiceResult struct {
	Items   []VoiceMatch `json:"items"`
	Trigger string       `json:"trigger,omitempty"`
}

// Empty reports whether nothing was understood
func (r VoiceResult) Empty() bool {
	return len(r.Items) == 0
}

// VoiceMatcher turns transcribed speech into catalog items
type VoiceMatcher struct {
	catalog *catalog.Catalog
}

// NewVoiceMatcher creates a matcher over the voice items of c
func NewVoiceMatcher(c *catalog.Catalog) *VoiceMatcher {
	return &VoiceMatcher{catalog: c}
}

// Match finds the catalog items mentioned in utterance.
//
// An item matches when one of its keywords occurs in the text, when the first
// three runes of a keyword occur, or when one of its phonetic aliases occurs.
// The first quantity expression found is shared by every matched item. With
// no match, a "what should I buy" question yields the weather suggestion set;
// anything else yields an empty result.
func (m *VoiceMatcher) Match(utterance string, locale models.Locale) VoiceResult {
	text := strings.ToLower(strings.TrimSpace(utterance))
	result := VoiceResult{Items: []VoiceMatch{}}
	if text == "" {
		return result
	}

	hint := firstQuantity(text)
	for _, item := range m.catalog.VoiceItems() {
		if m.matches(text, item) {
			result.Items = append(result.Items, VoiceMatch{Item: item, Quantity: hint})
		}
	}
	if len(result.Items) > 0 {
		return result
	}

	if isTrigger(text) {
		for _, id := range catalog.WeatherSuggestionIDs {
			item, err := m.catalog.Get(id)
			if err != nil {
				continue
			}
			result.Items = append(result.Items, VoiceMatch{Item: item})
		}
		result.Trigger = TriggerWeatherSuggestion
	}
	return result
}

// Summary renders the confirmation message shown after a match
func (m *VoiceMatcher) Summary(result VoiceResult, locale models.Locale) string {
	if result.Trigger == TriggerWeatherSuggestion {
		return i18n.T("voice.weather", locale)
	}
	if result.Empty() {
		return i18n.T("voice.not_found", locale)
	}

	details := make([]string, 0, len(result.Items))
	for _, match := range result.Items {
		name := match.Item.Name(locale)
		if match.Quantity != nil {
			name += " (" + match.Quantity.String() + ")"
		}
		details = append(details, name)
	}
	return i18n.Tf("voice.items_added", locale, len(details), strings.Join(details, ", "))
}

func (m *VoiceMatcher) matches(text string, item models.CatalogItem) bool {
	for _, kw := range item.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
		if utf8.RuneCountInString(kw) >= prefixRunes && strings.Contains(text, runePrefix(kw, prefixRunes)) {
			return true
		}
	}
	for _, alias := range m.catalog.Aliases(item.ID) {
		if strings.Contains(text, alias) {
			return true
		}
	}
	return false
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func firstQuantity(text string) *QuantityHint {
	m := quantityPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &QuantityHint{Amount: amount, Unit: unitNames[strings.ToLower(m[2])]}
}

func isTrigger(text string) bool {
	for _, phrase := range triggerPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
