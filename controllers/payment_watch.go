package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/payment"
	"github.com/khanhtran-03/shopsphere/utils"
)

// DBOrderFetcher reads orders from the local database. It satisfies
// payment.OrderFetcher for deployments where this service is the system of
// record; the reconciliation webhook is the writer it observes.
type DBOrderFetcher struct{}

func (DBOrderFetcher) FetchOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := config.DB.WithContext(ctx).Preload("OrderItems.Product").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payment.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

var (
	watchMu   sync.Mutex
	watchers  = make(map[string]*payment.Watcher)
	watchBase = context.Background()
)

// SetWatchContext installs the context bounding all payment watchers.
// Called once from main before the server starts accepting requests.
func SetWatchContext(ctx context.Context) {
	watchBase = ctx
}

// StartPaymentWatch begins background payment detection for a bank transfer
// order. Detection marks the order Paid and emails the customer. Starting a
// watch for an order that is already being watched is a no-op.
func StartPaymentWatch(orderID string, interval time.Duration) {
	watchMu.Lock()
	if _, exists := watchers[orderID]; exists {
		watchMu.Unlock()
		return
	}
	w := payment.NewWatcher(DBOrderFetcher{}, interval, onOrderPaid)
	watchers[orderID] = w
	watchMu.Unlock()

	if err := w.Start(watchBase, orderID); err != nil {
		utils.LogError("Failed to start payment watch for order %s: %v", orderID, err)
		removeWatch(orderID)
	}
}

func removeWatch(orderID string) {
	watchMu.Lock()
	delete(watchers, orderID)
	watchMu.Unlock()
}

func onOrderPaid(order *models.Order) {
	utils.LogInfo("Payment detected for order %s", order.ID)
	defer removeWatch(order.ID)

	if err := config.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusPaid).Error; err != nil {
		utils.LogError("Failed to mark order %s as paid: %v", order.ID, err)
	}

	var user models.User
	if err := config.DB.First(&user, order.UserID).Error; err != nil {
		utils.LogError("Failed to load user %d for order %s: %v", order.UserID, order.ID, err)
		return
	}
	if err := utils.SendOrderPaidEmail(user.Email, order); err != nil {
		utils.LogError("Failed to send confirmation email for order %s: %v", order.ID, err)
	}
}
