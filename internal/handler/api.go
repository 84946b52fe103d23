package handler

import (
	"github.com/devtree/internal/auth"
	"github.com/devtree/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	accounts  *service.AccountService
	profiles  *service.ProfileService
	analytics *service.AnalyticsService
	tokens    *auth.TokenIssuer
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, tokens *auth.TokenIssuer, uploadDir, uploadURL string) *API {
	return &API{
		accounts:  service.NewAccountService(db),
		profiles:  service.NewProfileService(db),
		analytics: service.NewAnalyticsService(db),
		tokens:    tokens,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}
