package middleware

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/dentacademy/internal/config"
	"github.com/example/dentacademy/internal/database"
	"github.com/example/dentacademy/internal/models"
	"github.com/example/dentacademy/internal/utils"
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

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Dr. Rao",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestResolveAdminWithoutSession(t *testing.T) {
	db := openTestDB(t)

	user, reason, err := ResolveAdmin(db, uuid.Nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil || reason != ReasonNoSession {
		t.Fatalf("expected no_session, got user=%v reason=%q", user, reason)
	}
}

func TestResolveAdminUnknownUser(t *testing.T) {
	db := openTestDB(t)

	user, reason, err := ResolveAdmin(db, uuid.New(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil || reason != ReasonUserNotFound {
		t.Fatalf("expected user_not_found, got user=%v reason=%q", user, reason)
	}
}

func TestResolveAdminRejectsRegularUser(t *testing.T) {
	db := openTestDB(t)
	regular := createUser(t, db, models.RoleUser)

	user, reason, err := ResolveAdmin(db, regular.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil || reason != ReasonForbidden {
		t.Fatalf("expected forbidden, got user=%v reason=%q", user, reason)
	}
}

func TestResolveAdminAcceptsAdmin(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, models.RoleAdmin)

	user, reason, err := ResolveAdmin(db, admin.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != "" {
		t.Fatalf("expected acceptance, got reason=%q", reason)
	}
	if user == nil || user.ID != admin.ID {
		t.Fatalf("expected resolved admin record, got %v", user)
	}
}

func TestResolveAdminStoreFailureIsNotARejection(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, models.RoleAdmin)

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	user, reason, err := ResolveAdmin(db, admin.ID, true)
	if err == nil {
		t.Fatal("expected store failure to surface as an error")
	}
	if user != nil || reason != "" {
		t.Fatalf("store failure must not carry a rejection reason, got user=%v reason=%q", user, reason)
	}
}

func TestRoleDowngradeTakesEffectOnNextCall(t *testing.T) {
	db := openTestDB(t)
	admin := createUser(t, db, models.RoleAdmin)

	if _, reason, err := ResolveAdmin(db, admin.ID, true); err != nil || reason != "" {
		t.Fatalf("expected admin before downgrade, got reason=%q err=%v", reason, err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", models.RoleUser).Error; err != nil {
		t.Fatalf("downgrade: %v", err)
	}

	if _, reason, err := ResolveAdmin(db, admin.ID, true); err != nil || reason != ReasonForbidden {
		t.Fatalf("expected forbidden right after downgrade, got reason=%q err=%v", reason, err)
	}
}

func adminTestApp(db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/admin/ping", AuthMiddleware(cfg), RequireAdmin(db), func(c *fiber.Ctx) error {
		admin, _ := GetCurrentAdmin(c)
		return c.JSON(fiber.Map{"admin": admin.Email})
	})
	return app
}

func TestRequireAdminStatuses(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}

	admin := createUser(t, db, models.RoleAdmin)
	regular := createUser(t, db, models.RoleUser)

	adminToken, err := utils.GenerateToken(cfg.JWTSecret, admin.ID, cfg.TokenExpires)
	if err != nil {
		t.Fatalf("admin token: %v", err)
	}
	regularToken, err := utils.GenerateToken(cfg.JWTSecret, regular.ID, cfg.TokenExpires)
	if err != nil {
		t.Fatalf("user token: %v", err)
	}

	app := adminTestApp(db, cfg)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"regular user", "Bearer " + regularToken, fiber.StatusForbidden},
		{"admin", "Bearer " + adminToken, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.status {
				body, _ := io.ReadAll(resp.Body)
				t.Fatalf("expected status %d, got %d (%s)", tc.status, resp.StatusCode, body)
			}
		})
	}
}

func TestRequireAdminStoreFailureIs500(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}

	admin := createUser(t, db, models.RoleAdmin)
	token, err := utils.GenerateToken(cfg.JWTSecret, admin.ID, cfg.TokenExpires)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	app := adminTestApp(db, cfg)
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure during role check, got %d", resp.StatusCode)
	}
}

func TestRequireAdminWithDeletedUser(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}

	admin := createUser(t, db, models.RoleAdmin)
	token, err := utils.GenerateToken(cfg.JWTSecret, admin.ID, cfg.TokenExpires)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if err := db.Delete(&models.User{}, "id = ?", admin.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	app := adminTestApp(db, cfg)
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for valid token with missing user, got %d", resp.StatusCode)
	}
}
