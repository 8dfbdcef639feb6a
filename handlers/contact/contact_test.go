package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/config"
	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
)

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// Validation failures are rejected before any database access, so these run
// against a handler with no store.
func TestSubmitRejectsInvalidInput(t *testing.T) {
	app := fiber.New()
	h := NewContactHandler(nil)
	app.Post("/api/contact", h.Submit)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "missing message",
			body: map[string]any{"name": "Asha", "email": "asha@example.com"},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "bad email",
			body: map[string]any{"name": "Asha", "email": "not-an-email", "message": "I would like to know more about the course."},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "message too short",
			body: map[string]any{"name": "Asha", "email": "asha@example.com", "message": "hi"},
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/contact", tc.body)
			if resp.StatusCode != tc.want {
				t.Errorf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestDeleteMessageIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	getEnv, err := config.Get()
	if err != nil {
		t.Fatalf("failed to read env: %v", err)
	}
	store, err := database.StartGORM(getEnv)
	if err != nil {
		t.Fatalf("failed to connect to Postgres: %v", err)
	}
	defer store.Close()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db := store.DB()

	msg := model.ContactMessage{
		Name:    "Integration Sender",
		Email:   fmt.Sprintf("sender%d@example.com", time.Now().UnixNano()),
		Message: "Please delete this message after the test.",
	}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("failed to create message: %v", err)
	}
	defer db.Unscoped().Delete(&msg)

	app := fiber.New()
	h := NewContactHandler(db)
	app.Delete("/api/admin/contact/:id", h.DeleteMessage)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/contact/%d", msg.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&model.ContactMessage{}).Where("id = ?", msg.ID).Count(&count)
	if count != 0 {
		t.Error("expected the message to be gone from default queries")
	}

	// Deleting again must report not found.
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/contact/%d", msg.ID), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on repeat delete, got %d", resp.StatusCode)
	}
}
