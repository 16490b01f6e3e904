package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers は起動時に組み立てたハンドラ一式
type Handlers struct {
	Health        *handler.HealthHandler
	Catalog       *handler.CatalogHandler
	Cart          *handler.CartHandler
	Checkout      *handler.CheckoutHandler
	Auth          *handler.AuthHandler
	Favorite      *handler.FavoriteHandler
	AdminCatalog  *handler.AdminCatalogHandler
	AdminSettings *handler.AdminSettingsHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminAudit    *handler.AdminAuditHandler
}

// RegisterRoutes は公開APIと /admin を登録する。/admin は JWT・トークン版・admin ロールの順に確認。
func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Favorite.RegisterRoutes(e, cfg, userRepo)

	admin := e.Group("/admin",
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
		middleware.AdminRoleGuard(),
	)
	h.AdminCatalog.RegisterRoutes(admin)
	h.AdminSettings.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
}
