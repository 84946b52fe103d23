package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devtree/internal/db"
)

func postJSON(engine http.Handler, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range header {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTrackEventEndpoint(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.POST("/analytics", api.TrackEvent)

	user := seedHandlerUser(t, "johndoe")

	w := postJSON(engine, "/analytics", `{"type":"visit","handle":"johndoe"}`, map[string]string{
		"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["msg"] == "" {
		t.Fatalf("success receipt should use the msg shape: %s", w.Body.String())
	}

	var stored db.User
	if err := db.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Visits != 1 {
		t.Fatalf("visit counter not bumped, got %d", stored.Visits)
	}

	var event db.AnalyticsEvent
	if err := db.DB.Where("user_id = ?", user.ID).First(&event).Error; err != nil {
		t.Fatalf("event not stored: %v", err)
	}
	if event.Device != "mobile" {
		t.Fatalf("device should be derived from the user agent: %#v", event)
	}
}

func TestTrackEventValidationAndNotFound(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.POST("/analytics", api.TrackEvent)

	// 非法事件类型在绑定层就被拒绝
	if w := postJSON(engine, "/analytics", `{"type":"hover","handle":"johndoe"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", w.Code)
	}
	if w := postJSON(engine, "/analytics", `{"type":"visit"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing handle, got %d", w.Code)
	}
	if w := postJSON(engine, "/analytics", `{"type":"visit","handle":"nobody"}`, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown handle, got %d", w.Code)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.GET("/analytics/dashboard", api.AuthRequired(), api.Dashboard)

	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
