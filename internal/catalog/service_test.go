package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/dentacademy/internal/database"
	"github.com/example/dentacademy/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func f64(v float64) *float64 {
	return &v
}

func makeCourse(slug string, price float64) models.Course {
	return models.Course{
		Slug:             slug,
		Title:            "Fixed Prosthodontics Masterclass",
		ShortDescription: "Crown and bridge fundamentals",
		FullDescription:  "A complete clinical walkthrough of fixed prosthodontic workflows.",
		Price:            f64(price),
		Thumbnails:       pq.StringArray{"thumb.jpg"},
		Category:         "clinical",
		Mode:             "online",
		Duration:         "12 weeks",
		Rating:           4.8,
		ReviewCount:      120,
		WhatYouLearn:     pq.StringArray{"tooth preparation", "impression techniques"},
		Curriculum:       datatypes.JSON([]byte(`[{"module":"Basics","lessons":4}]`)),
		WhoIsThisFor:     pq.StringArray{"BDS graduates"},
		Faculty:          "Dr. Mehta",
		FAQs:             datatypes.JSON([]byte(`[{"q":"Is this live?","a":"Yes"}]`)),
	}
}

func TestCreateAndGetBySlug(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	course := makeCourse("fixed-prosthodontics", 15000)
	if err := svc.Create(ctx, &course); err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.GetBySlug(ctx, "fixed-prosthodontics")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.Title != course.Title {
		t.Fatalf("expected title %q, got %q", course.Title, got.Title)
	}
}

func TestCreateDuplicateSlugConflictLeavesOriginalUntouched(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	first := makeCourse("fixed-prosthodontics", 15000)
	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := makeCourse("fixed-prosthodontics", 9999)
	err := svc.Create(ctx, &second)
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := svc.GetBySlug(ctx, "fixed-prosthodontics")
	if err != nil {
		t.Fatalf("get after conflict: %v", err)
	}
	if got.ID != first.ID || *got.Price != 15000 {
		t.Fatalf("existing record modified by conflicting create: %+v", got)
	}
}

func TestCreateReportsFirstMissingField(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())

	course := makeCourse("c", 100)
	course.Title = ""
	course.Category = ""

	err := svc.Create(context.Background(), &course)
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Missing required field: title" {
		t.Fatalf("expected first missing field to be title, got %q", err.Error())
	}
}

func TestUpdateMissingRecordIsNotFound(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())

	patch := models.Course{Title: "New title"}
	_, err := svc.UpdateBySlug(context.Background(), "nope", &patch)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestUpdateMergesFieldsAndKeepsSlug(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	course := makeCourse("endodontics", 12000)
	if err := svc.Create(ctx, &course); err != nil {
		t.Fatalf("create: %v", err)
	}

	patch := models.Course{Title: "Endodontics Advanced", Price: f64(14000)}
	updated, err := svc.UpdateBySlug(ctx, "endodontics", &patch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Title != "Endodontics Advanced" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if *updated.Price != 14000 {
		t.Fatalf("price not updated: %v", *updated.Price)
	}
	if updated.Slug != "endodontics" {
		t.Fatalf("slug changed unexpectedly: %q", updated.Slug)
	}
	if updated.Faculty != course.Faculty {
		t.Fatalf("unrelated field lost: %q", updated.Faculty)
	}
}

func TestUpdateSlugChangeChecksUniqueness(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	a := makeCourse("course-a", 100)
	b := makeCourse("course-b", 200)
	if err := svc.Create(ctx, &a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := svc.Create(ctx, &b); err != nil {
		t.Fatalf("create b: %v", err)
	}

	patch := models.Course{Slug: "course-a"}
	_, err := svc.UpdateBySlug(ctx, "course-b", &patch)
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict on slug collision, got %v", err)
	}

	patch = models.Course{Slug: "course-c"}
	updated, err := svc.UpdateBySlug(ctx, "course-b", &patch)
	if err != nil {
		t.Fatalf("rename to free slug: %v", err)
	}
	if updated.Slug != "course-c" {
		t.Fatalf("expected renamed slug, got %q", updated.Slug)
	}
}

func TestDeleteMissingRecordIsNotFound(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())

	err := svc.DeleteBySlug(context.Background(), "nope")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDeleteRemovesPermanently(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	course := makeCourse("orthodontics", 100)
	if err := svc.Create(ctx, &course); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteBySlug(ctx, "orthodontics"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetBySlug(ctx, "orthodontics"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestToggleFlagRoundTrip(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	course := makeCourse("implantology", 100)
	if err := svc.Create(ctx, &course); err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := svc.ToggleFlag(ctx, course.ID, "featured", false)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !toggled.Featured {
		t.Fatalf("expected featured=true after toggle")
	}

	toggled, err = svc.ToggleFlag(ctx, course.ID, "featured", true)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if toggled.Featured {
		t.Fatalf("expected featured=false after second toggle")
	}
}

func TestToggleFlagRejectsUnknownFieldAndMissingID(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	if _, err := svc.ToggleFlag(ctx, uuid.New(), "slug", false); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for non-flag field, got %v", err)
	}

	if _, err := svc.ToggleFlag(ctx, uuid.New(), "featured", false); KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found for missing id, got %v", err)
	}
}

func TestListOrdersByCreationTime(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	for _, slug := range []string{"first", "second", "third"} {
		course := makeCourse(slug, 100)
		if err := svc.Create(ctx, &course); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Slug != "first" || records[2].Slug != "third" {
		t.Fatalf("expected creation order, got %q..%q", records[0].Slug, records[2].Slug)
	}
}

func TestRatingClampedOnCreate(t *testing.T) {
	svc := NewService(openTestDB(t), Courses())
	ctx := context.Background()

	course := makeCourse("rated", 100)
	course.Rating = 9.5
	if err := svc.Create(ctx, &course); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetBySlug(ctx, "rated")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Rating != 5 {
		t.Fatalf("expected rating clamped to 5, got %v", got.Rating)
	}
}

func TestReviewsAreIDAddressedWithoutUniqueness(t *testing.T) {
	svc := NewService(openTestDB(t), Reviews())
	ctx := context.Background()

	first := models.Review{Course: "Fixed Prosthodontics", Rating: 5, Text: "Excellent", Date: "2026-01-10"}
	second := models.Review{Course: "Fixed Prosthodontics", Rating: 7, Text: "Great too", Date: "2026-01-11"}

	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if err := svc.Create(ctx, &second); err != nil {
		t.Fatalf("second review for same course should be allowed: %v", err)
	}

	got, err := svc.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Rating != 5 {
		t.Fatalf("expected rating clamped to 5, got %d", got.Rating)
	}

	if err := svc.DeleteByID(ctx, first.ID); err != nil {
		t.Fatalf("delete by id: %v", err)
	}
	if _, err := svc.GetByID(ctx, first.ID); KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}
