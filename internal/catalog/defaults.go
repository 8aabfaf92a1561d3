package catalog

import "github.com/yishak-cs/BazaarSetu/internal/models"

// WeatherSuggestionIDs are offered when a vendor asks what to buy today
var WeatherSuggestionIDs = []int{201, 202, 203}

var defaultItems = []models.CatalogItem{
	// vegetables
	{ID: 1, NameLocal: "टमाटर", NameEn: "Tomatoes", PriceLabel: "₹40/kg", Category: "vegetables"},
	{ID: 2, NameLocal: "प्याज", NameEn: "Onions", PriceLabel: "₹30/kg", Category: "vegetables"},
	{ID: 3, NameLocal: "आलू", NameEn: "Potatoes", PriceLabel: "₹25/kg", Category: "vegetables"},
	{ID: 4, NameLocal: "हरी मिर्च", NameEn: "Green Chili", PriceLabel: "₹80/kg", Category: "vegetables"},
	{ID: 5, NameLocal: "धनिया", NameEn: "Coriander", PriceLabel: "₹20/bunch", Category: "vegetables"},
	{ID: 6, NameLocal: "पुदीना", NameEn: "Mint", PriceLabel: "₹15/bunch", Category: "vegetables"},
	{ID: 7, NameLocal: "अदरक", NameEn: "Ginger", PriceLabel: "₹120/kg", Category: "vegetables"},
	{ID: 8, NameLocal: "लहसुन", NameEn: "Garlic", PriceLabel: "₹200/kg", Category: "vegetables"},
	{ID: 9, NameLocal: "गाजर", NameEn: "Carrots", PriceLabel: "₹35/kg", Category: "vegetables"},
	{ID: 10, NameLocal: "मटर", NameEn: "Green Peas", PriceLabel: "₹60/kg", Category: "vegetables"},

	// spices
	{ID: 11, NameLocal: "चाट मसाला", NameEn: "Chat Masala", PriceLabel: "₹80/100g", Category: "spices"},
	{ID: 12, NameLocal: "गरम मसाला", NameEn: "Garam Masala", PriceLabel: "₹120/100g", Category: "spices"},
	{ID: 13, NameLocal: "हल्दी पाउडर", NameEn: "Turmeric Powder", PriceLabel: "₹60/250g", Category: "spices"},
	{ID: 14, NameLocal: "लाल मिर्च पाउडर", NameEn: "Red Chili Powder", PriceLabel: "₹100/250g", Category: "spices"},
	{ID: 15, NameLocal: "जीरा पाउडर", NameEn: "Cumin Powder", PriceLabel: "₹150/250g", Category: "spices"},
	{ID: 16, NameLocal: "धनिया पाउडर", NameEn: "Coriander Powder", PriceLabel: "₹80/250g", Category: "spices"},

	// ingredients
	{ID: 17, NameLocal: "तेल", NameEn: "Cooking Oil", PriceLabel: "₹140/L", Category: "ingredients"},
	{ID: 18, NameLocal: "आटा", NameEn: "Wheat Flour", PriceLabel: "₹45/kg", Category: "ingredients"},
	{ID: 19, NameLocal: "बेसन", NameEn: "Gram Flour", PriceLabel: "₹80/kg", Category: "ingredients"},
	{ID: 20, NameLocal: "चावल", NameEn: "Rice", PriceLabel: "₹55/kg", Category: "ingredients"},
	{ID: 21, NameLocal: "चना", NameEn: "Chickpeas", PriceLabel: "₹70/kg", Category: "ingredients"},
	{ID: 22, NameLocal: "राजमा", NameEn: "Kidney Beans", PriceLabel: "₹120/kg", Category: "ingredients"},
	{ID: 23, NameLocal: "पापड़", NameEn: "Papad", PriceLabel: "₹180/pack", Category: "ingredients"},

	// dairy
	{ID: 24, NameLocal: "दूध", NameEn: "Milk", PriceLabel: "₹55/L", Category: "dairy"},
	{ID: 25, NameLocal: "दही", NameEn: "Yogurt", PriceLabel: "₹60/500g", Category: "dairy"},
	{ID: 26, NameLocal: "पनीर", NameEn: "Paneer", PriceLabel: "₹280/250g", Category: "dairy"},
	{ID: 27, NameLocal: "मक्खन", NameEn: "Butter", PriceLabel: "₹120/100g", Category: "dairy"},

	// snacks
	{ID: 28, NameLocal: "पानी पुरी", NameEn: "Pani Puri Shells", PriceLabel: "₹40/pack", Category: "snacks"},
	{ID: 29, NameLocal: "भेल मिक्स", NameEn: "Bhel Mix", PriceLabel: "₹60/500g", Category: "snacks"},
	{ID: 30, NameLocal: "सेव", NameEn: "Sev", PriceLabel: "₹80/250g", Category: "snacks"},

	// bulk
	{ID: 50, NameLocal: "बासमती चावल", NameEn: "Basmati Rice", PriceLabel: "₹120/kg", Category: "bulk"},
	{ID: 51, NameLocal: "तेल (सरसों)", NameEn: "Mustard Oil", PriceLabel: "₹160/L", Category: "bulk"},
	{ID: 52, NameLocal: "आटा", NameEn: "Wheat Flour", PriceLabel: "₹45/kg", Category: "bulk"},
	{ID: 53, NameLocal: "चना दाल", NameEn: "Chana Dal", PriceLabel: "₹90/kg", Category: "bulk"},
	{ID: 54, NameLocal: "चीनी", NameEn: "Sugar", PriceLabel: "₹48/kg", Category: "bulk"},
	{ID: 55, NameLocal: "प्याज", NameEn: "Onions", PriceLabel: "₹35/kg", Category: "bulk"},

	// voice ordering
	{ID: 101, NameLocal: "प्याज", NameEn: "Onions", PriceLabel: "₹25/kg", Category: "voice",
		Keywords: []string{"प्याज", "onion", "onions", "pyaaz", "pyaj", "kanda"}},
	{ID: 102, NameLocal: "आलू", NameEn: "Potatoes", PriceLabel: "₹20/kg", Category: "voice",
		Keywords: []string{"आलू", "potato", "potatoes", "aloo", "alu", "batata"}},
	{ID: 103, NameLocal: "टमाटर", NameEn: "Tomatoes", PriceLabel: "₹30/kg", Category: "voice",
		Keywords: []string{"टमाटर", "tomato", "tomatoes", "tamatar", "tamater"}},
	{ID: 104, NameLocal: "तेल", NameEn: "Oil", PriceLabel: "₹120/L", Category: "voice",
		Keywords: []string{"तेल", "oil", "cooking oil", "tel"}},
	{ID: 105, NameLocal: "आटा", NameEn: "Flour", PriceLabel: "₹35/kg", Category: "voice",
		Keywords: []string{"आटा", "flour", "wheat flour", "atta", "aata"}},
	{ID: 106, NameLocal: "चावल", NameEn: "Rice", PriceLabel: "₹45/kg", Category: "voice",
		Keywords: []string{"चावल", "rice", "basmati", "chawal"}},
	{ID: 107, NameLocal: "दाल", NameEn: "Lentils", PriceLabel: "₹80/kg", Category: "voice",
		Keywords: []string{"दाल", "lentils", "dal", "pulses"}},
	{ID: 108, NameLocal: "चीनी", NameEn: "Sugar", PriceLabel: "₹40/kg", Category: "voice",
		Keywords: []string{"चीनी", "sugar", "cheeni", "chini"}},
	{ID: 109, NameLocal: "नमक", NameEn: "Salt", PriceLabel: "₹20/kg", Category: "voice",
		Keywords: []string{"नमक", "salt", "namak"}},
	{ID: 110, NameLocal: "हल्दी", NameEn: "Turmeric", PriceLabel: "₹150/kg", Category: "voice",
		Keywords: []string{"हल्दी", "turmeric", "haldi"}},
	{ID: 111, NameLocal: "धनिया", NameEn: "Coriander", PriceLabel: "₹60/kg", Category: "voice",
		Keywords: []string{"धनिया", "coriander", "dhania", "cilantro"}},
	{ID: 112, NameLocal: "मिर्च", NameEn: "Chili", PriceLabel: "₹80/kg", Category: "voice",
		Keywords: []string{"मिर्च", "chili", "mirch", "pepper", "हरी मिर्च"}},
	{ID: 113, NameLocal: "अदरक", NameEn: "Ginger", PriceLabel: "₹100/kg", Category: "voice",
		Keywords: []string{"अदरक", "ginger", "adrak"}},
	{ID: 114, NameLocal: "कुल्फी", NameEn: "Kulfi", PriceLabel: "₹5/piece", Category: "voice",
		Keywords: []string{"कुल्फी", "kulfi", "ice cream"}},
	{ID: 115, NameLocal: "चाय", NameEn: "Tea", PriceLabel: "₹200/kg", Category: "voice",
		Keywords: []string{"चाय", "tea", "chai"}},
	{ID: 116, NameLocal: "पकौड़ा सामग्री", NameEn: "Pakora Mix", PriceLabel: "₹50/kg", Category: "voice",
		Keywords: []string{"पकौड़ा", "pakora", "fritter"}},

	// weather suggestions
	{ID: 201, NameLocal: "कुल्फी", NameEn: "Kulfi", PriceLabel: "₹5/piece", Category: "suggestion"},
	{ID: 202, NameLocal: "अदरक", NameEn: "Ginger", PriceLabel: "₹100/kg", Category: "suggestion"},
	{ID: 203, NameLocal: "ठंडे पेय", NameEn: "Cold Drinks", PriceLabel: "₹15/bottle", Category: "suggestion"},
}

// commonly mis-transliterated spellings
var defaultAliases = map[int][]string{
	101: {"pyaz", "piaz"},
	102: {"aaloo"},
	103: {"tometo", "tamato"},
}

type bulkTerms struct {
	itemID      int
	bulkPrice   string
	minQuantity int
}

var defaultBulkTerms = []bulkTerms{
	{50, "₹100/kg", 25},
	{51, "₹140/L", 15},
	{52, "₹38/kg", 50},
	{53, "₹78/kg", 20},
	{54, "₹42/kg", 30},
	{55, "₹28/kg", 50},
}

// supplier stock on hand, in the unit of each item's price label
var defaultStock = map[int]int{
	1:  0,
	2:  150,
	3:  5,
	17: 80,
	18: 120,
	20: 200,
	50: 500,
	51: 200,
	52: 1000,
	53: 300,
	54: 400,
	55: 600,
}

var defaultCoupons = []models.Coupon{
	{Code: "FIRST50", Title: models.Localized{Local: "पहली खरीदारी", En: "First Purchase"},
		Kind: models.CouponFlat, Value: 50, MinOrder: 200},
	{Code: "BULK20", Title: models.Localized{Local: "थोक छूट", En: "Bulk Discount"},
		Kind: models.CouponPercentage, Value: 20, MinOrder: 1000, Category: "bulk"},
	{Code: "WEATHER15", Title: models.Localized{Local: "मौसम स्पेशल", En: "Weather Special"},
		Kind: models.CouponPercentage, Value: 15, MinOrder: 300, Category: "weather"},
	{Code: "REFER100", Title: models.Localized{Local: "रेफर करें", En: "Refer & Earn"},
		Kind: models.CouponCashback, Value: 100, MinOrder: 0, Category: "referral"},
	{Code: "VOICE25", Title: models.Localized{Local: "वॉइस ऑर्डर", En: "Voice Order"},
		Kind: models.CouponFlat, Value: 25, MinOrder: 150, Category: "voice"},
}

// Default returns the built-in catalog.
// It panics if the built-in tables fail validation, which is a programming error.
func Default() *Catalog {
	c, err := New(defaultItems, defaultAliases)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCoupons returns the built-in coupon table
func DefaultCoupons() []models.Coupon {
	out := make([]models.Coupon, len(defaultCoupons))
	copy(out, defaultCoupons)
	return out
}

// DefaultStock returns the built-in supplier stock table keyed by item id
func DefaultStock() map[int]int {
	out := make(map[int]int, len(defaultStock))
	for id, qty := range defaultStock {
		out[id] = qty
	}
	return out
}

// BulkOffers resolves the built-in bulk terms against c
func (c *Catalog) BulkOffers() []models.BulkOffer {
	var out []models.BulkOffer
	for _, terms := range defaultBulkTerms {
		item, err := c.Get(terms.itemID)
		if err != nil {
			continue
		}
		out = append(out, models.BulkOffer{
			Item:           item,
			BulkPriceLabel: terms.bulkPrice,
			MinQuantity:    terms.minQuantity,
		})
	}
	return out
}

// BulkOffer returns the bulk terms for a single item
func (c *Catalog) BulkOffer(itemID int) (models.BulkOffer, bool) {
	for _, offer := range c.BulkOffers() {
		if offer.Item.ID == itemID {
			return offer, true
		}
	}
	return models.BulkOffer{}, false
}
