package service

import (
	"testing"

	"github.com/devtree/internal/db"
	"github.com/devtree/internal/links"
)

func seedUser(t *testing.T, handle, email string) *db.User {
	t.Helper()
	user := db.User{
		Handle:   handle,
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Links:    links.List{},
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func TestProfileGetByHandle(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	seeded := seedUser(t, "johndoe", "john@x.com")
	seeded.Description = "Full Stack Developer"
	seeded.Links = links.List{{Name: "github", URL: "https://github.com/johndoe", Enabled: true, ID: 1}}
	if err := db.DB.Save(seeded).Error; err != nil {
		t.Fatalf("failed to update seed: %v", err)
	}

	svc := NewProfileService(db.DB)
	profile, err := svc.GetByHandle("johndoe")
	if err != nil {
		t.Fatalf("get by handle failed: %v", err)
	}

	if profile.Handle != "johndoe" || profile.Description != "Full Stack Developer" {
		t.Fatalf("projection fields wrong: %#v", profile)
	}
	if len(profile.Links) != 1 || profile.Links[0].Name != "github" {
		t.Fatalf("links missing from projection: %#v", profile.Links)
	}

	if _, err := svc.GetByHandle("nobody"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	user := seedUser(t, "johndoe", "john@x.com")

	svc := NewProfileService(db.DB)
	updated, err := svc.UpdateProfile(user, UpdateProfileInput{
		Handle:      "John Doe",
		Description: "  Building links  ",
		Links: links.List{
			{Name: "github", URL: "https://github.com/johndoe", Enabled: true, ID: 9},
			{Name: "x", URL: "https://x.com/johndoe", Enabled: false, ID: 7},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Handle != "john-doe" {
		t.Fatalf("handle should be re-slugged, got %q", updated.Handle)
	}
	if updated.Description != "Building links" {
		t.Fatalf("description should be trimmed, got %q", updated.Description)
	}

	// 落库前强制执行序号不变量
	if updated.Links[0].ID != 1 {
		t.Fatalf("enabled link should be renumbered to 1, got %d", updated.Links[0].ID)
	}
	if updated.Links[1].ID != 0 {
		t.Fatalf("disabled link should carry id 0, got %d", updated.Links[1].ID)
	}

	var stored db.User
	if err := db.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(stored.Links) != 2 || stored.Links[0].ID != 1 {
		t.Fatalf("links not persisted with invariants: %#v", stored.Links)
	}
}

func TestProfileUpdateHandleConflict(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	seedUser(t, "taken", "taken@x.com")
	user := seedUser(t, "johndoe", "john@x.com")

	svc := NewProfileService(db.DB)
	if _, err := svc.UpdateProfile(user, UpdateProfileInput{Handle: "Taken", Description: "d"}); err != ErrHandleTaken {
		t.Fatalf("expected ErrHandleTaken, got %v", err)
	}

	// 自己保留自己的 handle 不算冲突
	if _, err := svc.UpdateProfile(user, UpdateProfileInput{Handle: "johndoe", Description: "d"}); err != nil {
		t.Fatalf("keeping own handle should not conflict: %v", err)
	}
}

func TestProfileSearchLimit(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	for i := 0; i < 25; i++ {
		seedUser(t, "user-"+string(rune('a'+i)), "user-"+string(rune('a'+i))+"@x.com")
	}

	svc := NewProfileService(db.DB)
	summaries, err := svc.Search()
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(summaries) != 20 {
		t.Fatalf("expected the directory to cap at 20 entries, got %d", len(summaries))
	}
}

func TestProfileSetImage(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	user := seedUser(t, "johndoe", "john@x.com")

	svc := NewProfileService(db.DB)
	if err := svc.SetImage(user, " /static/uploads/avatar.png "); err != nil {
		t.Fatalf("set image failed: %v", err)
	}

	var stored db.User
	if err := db.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Image != "/static/uploads/avatar.png" {
		t.Fatalf("image url not persisted trimmed: %q", stored.Image)
	}
}
