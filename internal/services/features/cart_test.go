package features

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

type cartTestContext struct {
	catalog  *catalog.Catalog
	cart     *services.CartStore
	matcher  *services.VoiceMatcher
	coupons  *services.CouponBook
	checkout *services.CheckoutService
	engine   *services.AdviceEngine
	voice    services.VoiceResult
	advice   models.Advice
	err      error
}

func (c *cartTestContext) reset() {
	c.catalog = catalog.Default()
	c.cart = services.NewCartStore("feature")
	c.matcher = services.NewVoiceMatcher(c.catalog)
	c.coupons = services.NewCouponBook(catalog.DefaultCoupons())
	c.checkout = services.NewCheckoutService(c.coupons, services.NewMockPayment(1, 0, nil), services.NewMemoryHistory(), nil)
	c.engine = services.NewAdviceEngine(nil)
	c.voice = services.VoiceResult{}
	c.advice = models.Advice{}
	c.err = nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.cart.Clear()
	return nil
}

func (c *cartTestContext) iAddOfItem(qty, id int) error {
	item, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	c.err = c.cart.AddItem(item, qty)
	return nil
}

func (c *cartTestContext) iSetTheQuantityOfItemTo(id, qty int) error {
	c.cart.UpdateQuantity(id, qty)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.cart.Clear()
	return nil
}

func (c *cartTestContext) iSay(utterance string) error {
	c.voice = c.matcher.Match(utterance, models.LocaleEnglish)
	for _, m := range c.voice.Items {
		qty := 1
		if m.Quantity != nil {
			qty = m.Quantity.CartQuantity()
		}
		if err := c.cart.AddItem(m.Item, qty); err != nil {
			return err
		}
	}
	return nil
}

func (c *cartTestContext) iApplyCoupon(code string) error {
	_, _, c.err = c.coupons.ApplyToCart(c.cart, code)
	return nil
}

func (c *cartTestContext) theWeatherIs(temp, humidity int, condition string) error {
	snap := models.WeatherSnapshot{
		TemperatureC: float64(temp),
		HumidityPct:  float64(humidity),
		Condition:    models.Condition(condition),
	}
	if !snap.Condition.Valid() {
		return fmt.Errorf("unknown condition %q", condition)
	}
	c.advice = c.engine.Compute(snap)
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := len(c.cart.Lines()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) itemHasQuantity(id, qty int) error {
	for _, line := range c.cart.Lines() {
		if line.ID == id {
			if line.Quantity != qty {
				return fmt.Errorf("item %d: expected quantity %d, got %d", id, qty, line.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("item %d is not in the cart", id)
}

func (c *cartTestContext) theItemCountIs(n int) error {
	if got := c.cart.TotalItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theTotalAmountIs(want string) error {
	expected, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return err
	}
	got, err := c.cart.TotalAmount()
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected total %v, got %v", expected, got)
	}
	return nil
}

func (c *cartTestContext) thePayableTotalIs(want string) error {
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	q, err := c.checkout.Quote(c.cart)
	if err != nil {
		return err
	}
	if !q.Total.Equal(expected) {
		return fmt.Errorf("expected payable %s, got %s", expected, q.Total)
	}
	return nil
}

func (c *cartTestContext) theLastOperationFailedWithAnInvalidQuantityError() error {
	var qerr *services.InvalidQuantityError
	if !errors.As(c.err, &qerr) {
		return fmt.Errorf("expected invalid quantity error, got %v", c.err)
	}
	return nil
}

func (c *cartTestContext) theLastOperationFailedWithAMinimumOrderError() error {
	var merr *services.MinimumOrderError
	if !errors.As(c.err, &merr) {
		return fmt.Errorf("expected minimum order error, got %v", c.err)
	}
	return nil
}

func (c *cartTestContext) theVoiceResultIsEmpty() error {
	if !c.voice.Empty() || c.voice.Trigger != "" {
		return fmt.Errorf("expected empty voice result, got %+v", c.voice)
	}
	return nil
}

func (c *cartTestContext) theVoiceTriggerIs(trigger string) error {
	if c.voice.Trigger != trigger {
		return fmt.Errorf("expected trigger %q, got %q", trigger, c.voice.Trigger)
	}
	return nil
}

func contains(recs []models.Recommendation, id string) bool {
	for _, r := range recs {
		if r.ItemID == id {
			return true
		}
	}
	return false
}

func (c *cartTestContext) theBuyListIncludes(id string) error {
	if !contains(c.advice.BuyInBulk, id) {
		return fmt.Errorf("buy list is missing %q", id)
	}
	return nil
}

func (c *cartTestContext) theBuyListExcludes(id string) error {
	if contains(c.advice.BuyInBulk, id) {
		return fmt.Errorf("buy list unexpectedly has %q", id)
	}
	return nil
}

func (c *cartTestContext) theAvoidListIncludes(id string) error {
	if !contains(c.advice.AvoidStocking, id) {
		return fmt.Errorf("avoid list is missing %q", id)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the weather is (\d+) degrees with (\d+)% humidity and "([^"]*)" skies$`, tc.theWeatherIs)

	// When steps
	ctx.Step(`^I add (-?\d+) of item (\d+)$`, tc.iAddOfItem)
	ctx.Step(`^I set the quantity of item (\d+) to (-?\d+)$`, tc.iSetTheQuantityOfItemTo)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I say "([^"]*)"$`, tc.iSay)
	ctx.Step(`^I apply coupon "([^"]*)"$`, tc.iApplyCoupon)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^item (\d+) has quantity (\d+)$`, tc.itemHasQuantity)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the total amount is (\d+(?:\.\d+)?)$`, tc.theTotalAmountIs)
	ctx.Step(`^the payable total is (\d+(?:\.\d+)?)$`, tc.thePayableTotalIs)
	ctx.Step(`^the last operation failed with an invalid quantity error$`, tc.theLastOperationFailedWithAnInvalidQuantityError)
	ctx.Step(`^the last operation failed with a minimum order error$`, tc.theLastOperationFailedWithAMinimumOrderError)
	ctx.Step(`^the voice result is empty$`, tc.theVoiceResultIsEmpty)
	ctx.Step(`^the voice trigger is "([^"]*)"$`, tc.theVoiceTriggerIs)
	ctx.Step(`^the buy list includes "([^"]*)"$`, tc.theBuyListIncludes)
	ctx.Step(`^the buy list excludes "([^"]*)"$`, tc.theBuyListExcludes)
	ctx.Step(`^the avoid list includes "([^"]*)"$`, tc.theAvoidListIncludes)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
