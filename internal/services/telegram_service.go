package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService pushes order notifications to the institute's admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// OrderNotification contains order data for the admin notification.
type OrderNotification struct {
	OrderID     string
	Items       []OrderItemNotification
	TotalAmount float64
	UserName    string
	UserEmail   string
	Status      string
}

// OrderItemNotification describes one order line.
type OrderItemNotification struct {
	Name     string
	Kind     string
	Quantity int
	Price    float64
}

// FormatPrice formats an INR amount with thousand separators.
func FormatPrice(amount float64) string {
	intAmount := int64(amount)
	str := fmt.Sprintf("%d", intAmount)

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return "₹" + result.String()
}

// NotifyNewOrder sends a new enrollment order to the admin chat.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s)\n   %d x %s\n",
			i+1,
			item.Name,
			item.Kind,
			item.Quantity,
			FormatPrice(item.Price),
		))
	}

	message := fmt.Sprintf(`<b>🦷 NEW ENROLLMENT ORDER</b>
<b>📋 Order:</b> %s
<b>👤 Student:</b> %s
<b>✉️ Email:</b> %s
<b>📦 Items:</b>
%s
<b>💰 Total:</b> %s
<b>📍 Status:</b> %s
━━━━━━━━━━━━━━━━━━`,
		order.OrderID,
		order.UserName,
		order.UserEmail,
		itemsList.String(),
		FormatPrice(order.TotalAmount),
		order.Status,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
