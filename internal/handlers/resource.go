package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dentacademy/internal/catalog"
)

// ResourceHandler exposes one catalog resource type over the uniform HTTP
// shape shared by courses, exams, test series, videos, notes, reviews and
// dentist registrations. Reads are public; every mutation sits behind the
// admin guard passed to Register.
type ResourceHandler[T any] struct {
	svc *catalog.Service[T]
}

// NewResourceHandler constructs a ResourceHandler over a store handle.
func NewResourceHandler[T any](db *gorm.DB, desc catalog.Descriptor[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: catalog.NewService(db, desc)}
}

// Get returns a single record when the addressing query param is present,
// otherwise the full listing ordered by creation time.
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	if h.svc.Descriptor().SlugAddressed() {
		if slug := c.Query("slug"); slug != "" {
			rec, err := h.svc.GetBySlug(c.Context(), slug)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(rec)
		}
	} else if raw := c.Query("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id parameter"})
		}
		rec, err := h.svc.GetByID(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	}

	records, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(records)
}

// Create validates and persists a new record.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	var payload T
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.svc.Create(c.Context(), &payload); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(payload)
}

// Update merges the provided fields into the addressed record.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	var payload T
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if h.svc.Descriptor().SlugAddressed() {
		slug := c.Query("slug")
		if slug == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing slug parameter"})
		}
		updated, err := h.svc.UpdateBySlug(c.Context(), slug, &payload)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(updated)
	}

	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing id parameter"})
	}
	updated, err := h.svc.UpdateByID(c.Context(), id, &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// Delete permanently removes the addressed record.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	if h.svc.Descriptor().SlugAddressed() {
		slug := c.Query("slug")
		if slug == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing slug parameter"})
		}
		if err := h.svc.DeleteBySlug(c.Context(), slug); err != nil {
			return respondError(c, err)
		}
	} else {
		id, err := uuid.Parse(c.Query("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing id parameter"})
		}
		if err := h.svc.DeleteByID(c.Context(), id); err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(fiber.Map{"message": h.svc.Descriptor().Name + " deleted successfully"})
}

type toggleRequest struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value bool   `json:"value"`
}

// Toggle flips a featured/popular flag to the negation of the value the
// admin UI last rendered.
func (h *ResourceHandler[T]) Toggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	updated, err := h.svc.ToggleFlag(c.Context(), id, req.Field, req.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// Register attaches the resource routes; admin guards every mutation.
func (h *ResourceHandler[T]) Register(router fiber.Router, auth, admin fiber.Handler) {
	router.Get("/", h.Get)
	router.Post("/", auth, admin, h.Create)
	router.Put("/", auth, admin, h.Update)
	router.Delete("/", auth, admin, h.Delete)
	router.Patch("/toggle", auth, admin, h.Toggle)
}
