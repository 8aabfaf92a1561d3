package services

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

type adviceRule struct {
	name  string
	when  func(models.WeatherSnapshot) bool
	buy   []models.Recommendation
	avoid []models.Recommendation
}

func rec(id, emoji string, sev models.Severity, name, nameEn, reason, reasonEn string) models.Recommendation {
	return models.Recommendation{
		ItemID:   id,
		Name:     models.Localized{Local: name, En: nameEn},
		Reason:   models.Localized{Local: reason, En: reasonEn},
		Emoji:    emoji,
		Severity: sev,
	}
}

// Rules are evaluated in this order and are cumulative.
var adviceRules = []adviceRule{
	{
		name: "humidity>75",
		when: func(w models.WeatherSnapshot) bool { return w.HumidityPct > 75 },
		buy: []models.Recommendation{
			rec("dry-staples", "🌾", models.SeverityMedium, "सूखा राशन", "Dry Staples",
				"नमी में सूखी चीजें टिकाऊ रहती हैं", "Shelf-stable goods keep well in humidity"),
			rec("rice-spices", "🍚", models.SeverityMedium, "चावल/मसाले", "Rice/Spices",
				"सीलबंद पैक में सुरक्षित", "Safe in sealed packs"),
		},
		avoid: []models.Recommendation{
			rec("tomatoes", "🍅", models.SeverityHigh, "टमाटर", "Tomatoes",
				"नमी के कारण जल्दी खराब हो जाएंगे", "Will spoil quickly due to humidity"),
			rec("leafy-greens", "🥬", models.SeverityMedium, "हरी पत्तेदार सब्जियां", "Leafy Greens",
				"नमी में पत्ते मुरझा जाते हैं", "Leaves wilt in humidity"),
		},
	},
	{
		name: "temperature>30",
		when: func(w models.WeatherSnapshot) bool { return w.TemperatureC > 30 },
		buy: []models.Recommendation{
			rec("kulfi-ice", "🍦", models.SeverityHigh, "कुल्फी/आइस", "Kulfi/Ice",
				"गर्मी में अच्छी बिक्री", "Good sales in hot weather"),
			rec("cold-drinks", "🥤", models.SeverityMedium, "ठंडे पेय", "Cold Drinks",
				"गर्मी में मांग बढ़ती है", "Demand increases in heat"),
		},
		avoid: []models.Recommendation{
			rec("chocolate", "🍫", models.SeverityHigh, "चॉकलेट", "Chocolate",
				"गर्मी में पिघल जाएगी", "Will melt in heat"),
		},
	},
	{
		name: "rainy",
		when: func(w models.WeatherSnapshot) bool { return w.Condition == models.ConditionRainy },
		buy: []models.Recommendation{
			rec("ginger-tea", "☕", models.SeverityHigh, "अदरक/चाय", "Ginger/Tea",
				"बारिश में गर्म चीजों की मांग", "Hot items in demand during rain"),
			rec("pakoras", "🥙", models.SeverityMedium, "पकौड़े के लिए सामग्री", "Pakora Ingredients",
				"बारिश में तली हुई चीजें पसंद", "Fried items preferred in rain"),
		},
		avoid: []models.Recommendation{
			rec("cut-fruit", "🍉", models.SeverityHigh, "कटे फल", "Cut Fruit",
				"बारिश में संक्रमण का खतरा", "Infection risk during rain"),
			rec("pani-puri-water", "💧", models.SeverityMedium, "पानी पुरी का पानी", "Pani Puri Water",
				"बारिश में पानी दूषित हो सकता है", "Water can get contaminated in rain"),
		},
	},
	{
		name: "temperature<25",
		when: func(w models.WeatherSnapshot) bool { return w.TemperatureC < 25 },
		buy: []models.Recommendation{
			rec("tea", "🍵", models.SeverityMedium, "चाय", "Tea",
				"ठंड में गर्म पेय की मांग", "Warm drinks sell in cool weather"),
			rec("winter-vegetables", "🥕", models.SeverityHigh, "सर्दी की सब्जियां", "Winter Vegetables",
				"ठंड में अच्छी क्वालिटी मिलती है", "Better quality in cool weather"),
		},
		avoid: []models.Recommendation{
			rec("kulfi-ice", "🍦", models.SeverityMedium, "कुल्फी/आइस", "Kulfi/Ice",
				"ठंड में कम बिक्री", "Slow sales in cool weather"),
		},
	},
	{
		name: "temperature>35",
		when: func(w models.WeatherSnapshot) bool { return w.TemperatureC > 35 },
		buy: []models.Recommendation{
			rec("nimbu-pani", "🍋", models.SeverityHigh, "नींबू पानी", "Nimbu Pani",
				"तेज गर्मी में सबसे ज्यादा मांग", "Top seller in extreme heat"),
			rec("buttermilk", "🥛", models.SeverityHigh, "छाछ", "Buttermilk",
				"लू से राहत", "Relief from heatwave"),
		},
	},
}

// AdviceEngine maps a weather reading to buy and avoid lists and keeps the
// vendor's feedback on individual recommendations.
type AdviceEngine struct {
	logger *zap.Logger

	mu       sync.RWMutex
	feedback map[string]bool
}

// NewAdviceEngine creates an advice engine
func NewAdviceEngine(logger *zap.Logger) *AdviceEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdviceEngine{
		logger:   logger,
		feedback: make(map[string]bool),
	}
}

// Compute evaluates every rule against snapshot. The lists are rebuilt on each
// call, in rule order, so equal snapshots give equal output.
func (e *AdviceEngine) Compute(snapshot models.WeatherSnapshot) models.Advice {
	advice := models.Advice{
		BuyInBulk:     []models.Recommendation{},
		AvoidStocking: []models.Recommendation{},
	}

	for _, rule := range adviceRules {
		if !rule.when(snapshot) {
			continue
		}
		advice.BuyInBulk = appendRule(advice.BuyInBulk, rule.buy, rule.name)
		advice.AvoidStocking = appendRule(advice.AvoidStocking, rule.avoid, rule.name)
	}
	return advice
}

func appendRule(dst, recs []models.Recommendation, rule string) []models.Recommendation {
	for _, r := range recs {
		r.Rule = rule
		dst = append(dst, r)
	}
	return dst
}

// RecordFeedback stores the latest verdict for a recommendation id
func (e *AdviceEngine) RecordFeedback(fb models.Feedback) {
	e.mu.Lock()
	e.feedback[fb.ItemID] = fb.Helpful
	e.mu.Unlock()

	e.logger.Info("advice feedback recorded",
		zap.String("item_id", fb.ItemID),
		zap.Bool("helpful", fb.Helpful))
}

// Feedback returns all recorded verdicts ordered by item id
func (e *AdviceEngine) Feedback() []models.Feedback {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Feedback, 0, len(e.feedback))
	for id, helpful := range e.feedback {
		out = append(out, models.Feedback{ItemID: id, Helpful: helpful})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// DemoWeather is the reading served as today's weather until a live weather
// feed is wired in
var DemoWeather = models.WeatherSnapshot{
	TemperatureC: 32,
	HumidityPct:  78,
	Condition:    models.ConditionCloudy,
}

// Today computes advice for DemoWeather
func (e *AdviceEngine) Today() (models.WeatherSnapshot, models.Advice) {
	return DemoWeather, e.Compute(DemoWeather)
}
