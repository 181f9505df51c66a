package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/example/dentacademy/internal/cart"
)

const cartCookieName = "cart_id"

// CartHandler exposes the visitor's cart. The cart belongs to the browser
// session, identified by a long-lived cookie; it is rehydrated from storage
// on every request, mutated, and written back best-effort. It is never
// checked against the catalog here.
type CartHandler struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCartHandler constructs CartHandler over a shared redis client.
func NewCartHandler(client *redis.Client, ttl time.Duration) *CartHandler {
	return &CartHandler{redis: client, ttl: ttl}
}

func (h *CartHandler) load(c *fiber.Ctx) *cart.Cart {
	visitorID := c.Cookies(cartCookieName)
	if visitorID == "" {
		visitorID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:    cartCookieName,
			Value:   visitorID,
			Expires: time.Now().Add(h.ttl),
		})
	}
	return cart.New(cart.NewRedisStorage(h.redis, visitorID, h.ttl))
}

func cartResponse(ct *cart.Cart) fiber.Map {
	return fiber.Map{
		"items":       ct.Lines(),
		"total_price": ct.TotalPrice(),
		"item_count":  ct.ItemCount(),
	}
}

// Get returns the cart contents with derived totals.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.load(c)))
}

// AddItem adds an item snapshot, incrementing quantity on repeat adds.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var item cart.Item
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if item.ID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "item id is required")
	}

	ct := h.load(c)
	ct.Add(item)
	return c.JSON(cartResponse(ct))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem overwrites a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ct := h.load(c)
	ct.UpdateQuantity(c.Params("id"), req.Quantity)
	return c.JSON(cartResponse(ct))
}

// RemoveItem deletes a line outright.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	ct := h.load(c)
	ct.Remove(c.Params("id"))
	return c.JSON(cartResponse(ct))
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	ct := h.load(c)
	ct.Clear()
	return c.JSON(cartResponse(ct))
}
