package services

import (
	"context"
	"fmt"
	"strings"

	"curtain_store/internal/models"
	"curtain_store/pkg/whatsapp"
)

type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

type whatsappNotifier struct {
	client *whatsapp.Client
}

// NewWhatsAppNotifier sends order confirmations to the customer's phone. With
// no gateway configured it does nothing.
func NewWhatsAppNotifier(client *whatsapp.Client) Notifier {
	return &whatsappNotifier{client: client}
}

func (n *whatsappNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	if !n.client.Enabled() {
		return nil
	}
	return n.client.SendTextMessage(ctx, order.CustomerPhone, OrderConfirmationMessage(order))
}

func OrderConfirmationMessage(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you %s! Your order %s has been received.\n", order.CustomerName, order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d: %d\n", item.Name, item.Quantity, item.LineTotal())
	}
	fmt.Fprintf(&b, "Total: %d (%s)\n", order.TotalAmount, paymentLabel(order.PaymentMethod))
	b.WriteString("We will call you to confirm delivery and installation.")
	return b.String()
}

func paymentLabel(method string) string {
	switch method {
	case "cod":
		return "cash on delivery"
	case "advance_10":
		return "10% advance"
	case "full_100":
		return "paid in full"
	case "gateway":
		return "online payment"
	default:
		return method
	}
}
