package models

// Locale selects which half of a Localized pair is displayed
type Locale string

const (
	LocaleHindi   Locale = "hi"
	LocaleEnglish Locale = "en"
)

// Localized holds the Hindi and English rendering of the same text
type Localized struct {
	Local string `json:"hi"`
	En    string `json:"en"`
}

// In returns the text for the given locale, falling back to English
func (l Localized) In(locale Locale) string {
	if locale == LocaleHindi && l.Local != "" {
		return l.Local
	}
	return l.En
}

// CatalogItem represents a purchasable raw material
type CatalogItem struct {
	ID         int      `json:"id"`
	NameLocal  string   `json:"name"`
	NameEn     string   `json:"name_en"`
	PriceLabel string   `json:"price"`
	Category   string   `json:"category,omitempty"`
	Keywords   []string `json:"-"`
}

// Name returns the item name in the given locale
func (i CatalogItem) Name(locale Locale) string {
	return Localized{Local: i.NameLocal, En: i.NameEn}.In(locale)
}

// BulkOffer is a discounted unit price available above a minimum quantity
type BulkOffer struct {
	Item           CatalogItem `json:"item"`
	BulkPriceLabel string      `json:"bulk_price"`
	MinQuantity    int         `json:"min_quantity"`
}

// CouponKind decides how a coupon value is applied to a subtotal
type CouponKind string

const (
	CouponFlat       CouponKind = "flat"
	CouponPercentage CouponKind = "percentage"
	CouponCashback   CouponKind = "cashback"
)

// Coupon represents a redeemable discount code
type Coupon struct {
	Code     string     `json:"code"`
	Title    Localized  `json:"title"`
	Kind     CouponKind `json:"type"`
	Value    float64    `json:"discount"`
	MinOrder float64    `json:"min_order"`
	Category string     `json:"category,omitempty"`
}
