package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"curtain_store/internal/services"
	"curtain_store/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var orderNumberPattern = regexp.MustCompile(`(?i)ORD-\d{8}-[0-9A-F]{8}`)

type WhatsAppHandler struct {
	client   *whatsapp.Client
	orders   services.OrderService
	notifier services.Notifier
	logger   *zap.Logger
}

func NewWhatsAppHandler(
	client *whatsapp.Client,
	orders services.OrderService,
	notifier services.Notifier,
	logger *zap.Logger,
) *WhatsAppHandler {
	return &WhatsAppHandler{
		client:   client,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

type WebhookRequest struct {
	SenderID  string `json:"sender_id"`
	ChatID    string `json:"chat_id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Pushname  string `json:"pushname"`
	Message   struct {
		Text string `json:"text"`
		ID   string `json:"id"`
	} `json:"message"`
}

type SendMessageRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// HandleWebhook answers customers who message an order number with its status.
func (h *WhatsAppHandler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// format: 628123456789@s.whatsapp.net
	phone := req.From
	if phone == "" {
		phone = req.SenderID
	}
	phone, _, _ = strings.Cut(phone, "@")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender is required"})
		return
	}

	reply := h.replyFor(c.Request.Context(), phone, req.Message.Text)
	if h.client.Enabled() {
		if err := h.client.SendTextMessage(c.Request.Context(), phone, reply); err != nil {
			h.logger.Warn("webhook reply not sent", zap.String("phone", phone), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "reply": reply})
}

func (h *WhatsAppHandler) replyFor(ctx context.Context, phone, text string) string {
	number := orderNumberPattern.FindString(text)
	if number == "" {
		return "Hi! Send us your order number (for example ORD-20260314-1A2B3C4D) to check its status."
	}

	sender := h.client.NormalizePhone(phone)
	order, err := h.orders.GetOrderByNumber(ctx, strings.ToUpper(number))
	// A sender with no digits never owns an order.
	if err != nil || sender == "" || h.client.NormalizePhone(order.CustomerPhone) != sender {
		if err != nil && statusFor(err) == http.StatusInternalServerError {
			h.logger.Error("order lookup failed", zap.String("order_number", number), zap.Error(err))
		}
		return "We could not find order " + strings.ToUpper(number) + " for this number."
	}
	return "Order " + order.OrderNumber + " is " + order.Status + "."
}

func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if !h.client.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "WhatsApp gateway is not configured"})
		return
	}

	if err := h.client.SendTextMessage(c.Request.Context(), req.Phone, req.Message); err != nil {
		h.logger.Warn("manual message not sent", zap.String("phone", req.Phone), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *WhatsAppHandler) ResendConfirmation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.client.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "WhatsApp gateway is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	if err := h.notifier.OrderPlaced(ctx, order); err != nil {
		h.logger.Warn("confirmation not resent", zap.String("order_number", order.OrderNumber), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "order_number": order.OrderNumber})
}

