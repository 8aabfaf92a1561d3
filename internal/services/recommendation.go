package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// ReorderSuggestion is a previously bought item the vendor may want again
type ReorderSuggestion struct {
	Item        models.CatalogItem `json:"item"`
	OrderCount  int                `json:"order_count"`
	Explanation models.Localized   `json:"explanation"`
}

// RecommendationService answers questions about a vendor's past orders
type RecommendationService struct {
	history OrderHistory
	logger  *zap.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(history OrderHistory, logger *zap.Logger) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		history: history,
		logger:  logger,
	}
}

// RecentOrders returns the vendor's latest orders, newest first
func (s *RecommendationService) RecentOrders(ctx context.Context, vendorID string, limit int) ([]models.Order, error) {
	orders, err := s.history.Recent(ctx, vendorID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent orders")
	}
	return orders, nil
}

// FrequentItems answers: "What does a vendor generally order most frequently?"
func (s *RecommendationService) FrequentItems(ctx context.Context, vendorID string, limit int) ([]models.FrequentItem, error) {
	items, err := s.history.Frequent(ctx, vendorID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get frequent items")
	}
	return items, nil
}

// Suggestions lists frequently ordered items that are not already in cart
func (s *RecommendationService) Suggestions(ctx context.Context, vendorID string, cart *CartStore, limit int) ([]ReorderSuggestion, error) {
	frequent, err := s.FrequentItems(ctx, vendorID, 0)
	if err != nil {
		return nil, err
	}

	inCart := make(map[int]bool)
	if cart != nil {
		for _, line := range cart.Lines() {
			inCart[line.ID] = true
		}
	}

	suggestions := []ReorderSuggestion{}
	for _, fi := range frequent {
		if inCart[fi.Item.ID] {
			continue
		}
		suggestions = append(suggestions, ReorderSuggestion{
			Item:       fi.Item,
			OrderCount: fi.OrderCount,
			Explanation: models.Localized{
				Local: fmt.Sprintf("आपने इसे %d बार ऑर्डर किया है", fi.OrderCount),
				En:    fmt.Sprintf("You've ordered this %d times", fi.OrderCount),
			},
		})
		if limit > 0 && len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

// Reorder adds every line of a past order to cart. The order must belong to
// the cart's vendor. Lines keep the price they were bought at.
func (s *RecommendationService) Reorder(ctx context.Context, cart *CartStore, orderID string) (models.Order, error) {
	order, err := s.history.Order(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.VendorID != cart.VendorID() {
		return models.Order{}, errors.Wrapf(ErrOrderNotFound, "id %s", orderID)
	}

	for _, line := range order.Lines {
		if err := cart.AddLine(line); err != nil {
			return models.Order{}, errors.Wrapf(err, "reorder line %d", line.ID)
		}
	}

	s.logger.Info("order re-added to cart",
		zap.String("order_id", orderID),
		zap.String("cart_id", cart.ID()),
		zap.Int("lines", len(order.Lines)))
	return order, nil
}
