package models

// Severity ranks how strongly a recommendation should be acted on
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Condition is the coarse sky condition reported by the weather source
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
)

// Valid reports whether c is one of the known conditions
func (c Condition) Valid() bool {
	switch c {
	case ConditionSunny, ConditionCloudy, ConditionRainy:
		return true
	}
	return false
}

// WeatherSnapshot is a single weather reading used to drive buying advice
type WeatherSnapshot struct {
	TemperatureC float64   `json:"temperature"`
	HumidityPct  float64   `json:"humidity"`
	Condition    Condition `json:"condition"`
}

// Recommendation represents one buy or avoid suggestion with its explanation
type Recommendation struct {
	ItemID   string    `json:"item_id"`
	Name     Localized `json:"name"`
	Reason   Localized `json:"reason"`
	Emoji    string    `json:"emoji,omitempty"`
	Severity Severity  `json:"severity"`
	Rule     string    `json:"rule"`
}

// Advice groups the recommendations produced for one weather snapshot
type Advice struct {
	BuyInBulk     []Recommendation `json:"buy_in_bulk"`
	AvoidStocking []Recommendation `json:"avoid_stocking"`
}

// Feedback is the vendor's verdict on a single recommendation
type Feedback struct {
	ItemID  string `json:"item_id"`
	Helpful bool   `json:"helpful"`
}
