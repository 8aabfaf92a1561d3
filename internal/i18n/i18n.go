// Package i18n is the two-locale message dictionary and Accept-Language negotiation.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

var messages = map[string]models.Localized{
	"error.bad_request":      {Local: "अमान्य अनुरोध", En: "Invalid request"},
	"error.internal":         {Local: "कुछ गलत हो गया", En: "Something went wrong"},
	"error.invalid_quantity": {Local: "मात्रा कम से कम %d होनी चाहिए", En: "Quantity must be at least %d"},
	"error.cart_not_found":   {Local: "कार्ट नहीं मिला", En: "Cart not found"},
	"error.item_not_found":   {Local: "आइटम नहीं मिला", En: "Item not found"},
	"error.order_not_found":  {Local: "ऑर्डर नहीं मिला", En: "Order not found"},
	"error.empty_cart":       {Local: "आपका कार्ट खाली है", En: "Your cart is empty"},
	"error.payment_declined": {Local: "भुगतान विफल। कृपया पुनः प्रयास करें", En: "Payment failed. Please try again"},
	"error.unknown_coupon":   {Local: "अमान्य कूपन कोड", En: "Invalid coupon code"},
	"error.coupon_minimum":   {Local: "न्यूनतम ऑर्डर ₹%.0f होना चाहिए", En: "Minimum order of ₹%.0f required"},
	"error.invalid_mobile":   {Local: "कृपया 10 अंकों का मोबाइल नंबर दर्ज करें", En: "Please enter a 10-digit mobile number"},
	"error.invalid_otp":      {Local: "गलत OTP", En: "Invalid OTP"},
	"error.invalid_role":     {Local: "भूमिका विक्रेता या आपूर्तिकर्ता होनी चाहिए", En: "Role must be vendor or supplier"},

	"error.forbidden":          {Local: "कृपया आपूर्तिकर्ता के रूप में लॉग इन करें", En: "Please log in as a supplier"},
	"error.order_not_pending":  {Local: "इस ऑर्डर पर पहले ही निर्णय हो चुका है", En: "This order was already accepted or rejected"},
	"error.insufficient_stock": {Local: "स्टॉक कम है: %s के केवल %d उपलब्ध", En: "Not enough stock: only %[2]d of %[1]s left"},
	"error.invalid_status":     {Local: "अमान्य स्थिति", En: "Invalid order status"},

	"auth.otp_sent":      {Local: "OTP भेजा गया", En: "OTP sent"},
	"auth.welcome":       {Local: "स्वागत है, %s", En: "Welcome, %s"},
	"auth.logged_out":    {Local: "आप लॉग आउट हो गए", En: "You have been logged out"},
	"cart.cleared":       {Local: "कार्ट खाली किया गया", En: "Cart cleared"},
	"cart.added":         {Local: "%s कार्ट में जोड़ा गया", En: "%s added to cart"},
	"coupon.applied":     {Local: "कूपन लागू! ₹%.0f की बचत", En: "Coupon applied! You saved ₹%.0f"},
	"bulk.added":         {Local: "%s थोक में जोड़ा गया", En: "%s added in bulk"},
	"checkout.success":   {Local: "ऑर्डर सफलतापूर्वक दिया गया!", En: "Order placed successfully!"},
	"reorder.added":      {Local: "पिछला ऑर्डर कार्ट में जोड़ा गया", En: "Previous order added to cart"},
	"voice.items_added":  {Local: "%d आइटम जोड़े गए: %s", En: "%d items added: %s"},
	"voice.weather":      {Local: "मौसम के अनुसार सुझाव जोड़े गए!", En: "Weather-based suggestions added!"},
	"voice.not_found":    {Local: "कोई आइटम नहीं मिला। कृपया स्पष्ट रूप से बोलें या \"आज क्या खरीदूं\" पूछें।", En: "No items found. Please speak clearly or ask \"what should I buy today\"."},
	"advice.helpful":     {Local: "धन्यवाद! आपकी प्रतिक्रिया दर्ज हो गई", En: "Thanks! Your feedback is recorded"},
	"advice.not_helpful": {Local: "फीडबैक के लिए धन्यवाद", En: "Thanks for your feedback"},

	"supplier.accepted": {Local: "ऑर्डर स्वीकार किया गया!", En: "Order accepted!"},
	"supplier.rejected": {Local: "ऑर्डर अस्वीकार किया गया", En: "Order rejected"},
}

// T returns the message for key in locale. Unknown keys are returned as-is.
func T(key string, locale models.Locale) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	return msg.In(locale)
}

// Tf formats the message for key with args
func Tf(key string, locale models.Locale, args ...any) string {
	return fmt.Sprintf(T(key, locale), args...)
}

var (
	supported = []models.Locale{models.LocaleHindi, models.LocaleEnglish}
	matcher   = language.NewMatcher([]language.Tag{language.Hindi, language.English})
)

// Parse maps a language tag such as "hi", "en-IN" or "EN" to a supported locale
func Parse(s string) (models.Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range supported {
		if base.String() == string(l) {
			return l, true
		}
	}
	return "", false
}

// Negotiate picks the response locale. An explicit query value wins, then the
// Accept-Language header, then fallback.
func Negotiate(query, acceptLanguage string, fallback models.Locale) models.Locale {
	if l, ok := Parse(query); ok {
		return l
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}
