package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
)

func TestGetByHandlePublicProjection(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.GET("/:handle", api.GetByHandle)

	user := seedHandlerUser(t, "johndoe")
	user.Description = "**Full Stack** Developer"
	user.Links = links.List{{Name: "github", URL: "https://github.com/johndoe", Enabled: true, ID: 1}}
	if err := db.DB.Save(user).Error; err != nil {
		t.Fatalf("failed to update seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/johndoe", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}

	if payload["handle"] != "johndoe" {
		t.Fatalf("handle wrong: %v", payload["handle"])
	}
	rendered, _ := payload["descriptionHtml"].(string)
	if !strings.Contains(rendered, "<strong>Full Stack</strong>") {
		t.Fatalf("markdown not rendered: %q", rendered)
	}
	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "@x.com") {
		t.Fatalf("credentials leaked: %s", w.Body.String())
	}
}

func TestGetByHandleNotFoundUsesMsgShape(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.GET("/:handle", api.GetByHandle)

	req := httptest.NewRequest(http.MethodGet, "/nobody", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["msg"] == "" {
		t.Fatalf("public 404 should use the msg shape: %s", w.Body.String())
	}
}

func TestRenderDescriptionSanitizesHTML(t *testing.T) {
	rendered := renderDescription("hello <script>alert(1)</script> world")
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", rendered)
	}

	if renderDescription("   ") != "" {
		t.Fatal("blank description should render to empty string")
	}
}

func TestSearchReturnsSummaries(t *testing.T) {
	api, engine, cleanup := setupHandlerTest(t)
	defer cleanup()

	engine.GET("/search", api.Search)

	seedHandlerUser(t, "johndoe")
	seedHandlerUser(t, "janedoe")

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(payload))
	}
	if _, leaked := payload[0]["email"]; leaked {
		t.Fatalf("directory projection must not carry email: %s", w.Body.String())
	}
}
