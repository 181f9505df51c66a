package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dentacademy/internal/middleware"
	"github.com/example/dentacademy/internal/models"
	"github.com/example/dentacademy/internal/services"
	"github.com/example/dentacademy/internal/utils"
)

// OrderHandler manages the checkout boundary: order creation and owner-scoped
// order reads. Payment confirmation that moves an order out of pending is an
// external webhook's job.
type OrderHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{db: db, telegram: telegram}
}

type orderItemRequest struct {
	ItemType string  `json:"item_type"`
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

// CreateOrder turns the caller's cart lines into a pending order. Cart lines
// are recorded as submitted, without re-checking them against the catalog.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	order := models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
	}

	var total float64
	for _, item := range req.Items {
		if !models.ValidItemKind(item.ItemType) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid item_type: "+item.ItemType)
		}

		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid item_id")
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		order.Items = append(order.Items, models.OrderItem{
			ItemType: item.ItemType,
			ItemID:   itemID,
			Price:    item.Price,
			Quantity: quantity,
		})

		// TODO: confirm with product whether totals should be
		// quantity-weighted before the payment webhook ships.
		total += item.Price
	}
	order.TotalAmount = total

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	if h.telegram != nil {
		go h.notifyNewOrder(order, userID, req)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_id": order.ID,
			"status":   order.Status,
			"total":    order.TotalAmount,
		},
	})
}

func (h *OrderHandler) notifyNewOrder(order models.Order, userID uuid.UUID, req createOrderRequest) {
	var user models.User
	_ = h.db.First(&user, "id = ?", userID).Error

	items := make([]services.OrderItemNotification, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderItemNotification{
			Name:     item.Name,
			Kind:     item.ItemType,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	notification := services.OrderNotification{
		OrderID:     order.ID.String(),
		Items:       items,
		TotalAmount: order.TotalAmount,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Status:      order.Status,
	}

	if err := h.telegram.NotifyNewOrder(notification); err != nil {
		// Logged inside the service; the order itself already committed.
		return
	}
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order. Owners see their own orders; admins may
// read any order, with the role re-checked against the store on this call.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.UserID != userID {
		_, reason, err := middleware.ResolveAdmin(h.db, userID, true)
		if err != nil {
			return err
		}
		if reason != "" {
			return fiber.NewError(fiber.StatusForbidden, "not your order")
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
