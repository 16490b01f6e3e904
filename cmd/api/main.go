package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/localstore"
	"storefront/internal/infra/logger"
	"storefront/internal/infra/mailer"
	"storefront/internal/infra/objectstore"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/telemetry"
	"storefront/internal/realtime"
	"storefront/internal/server"
	"storefront/internal/usecase"
)

const serviceName = "storefront"

// 注文確定で在庫が変わるので一覧キャッシュも捨てる
type orderListeners struct {
	feed  *realtime.OrderFeed
	cache usecase.Invalidator
}

func (l orderListeners) PublishOrder(o model.Order) {
	l.cache.Invalidate()
	l.feed.PublishOrder(o)
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		return err
	}

	logger.New(logger.Options{
		Service:   serviceName,
		Env:       cfg.GoEnv,
		Level:     cfg.LogLevel,
		AddSource: !cfg.IsDev(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		slog.Warn("tracing disabled", "err", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	//カートは bbolt に保存
	cartStore, err := localstore.Open(cfg.CartStorePath, localstore.CartBucket)
	if err != nil {
		return err
	}
	defer cartStore.Close()
	sessions := cart.NewSessions(cartStore)

	objects, err := objectstore.NewLocal(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return err
	}
	defer objects.Close()

	//SendGrid 未設定なら通知は 500 を返す
	var mail usecase.Mailer
	if cfg.MailEnabled() {
		mail = mailer.NewSendGrid(mailer.SendGridConfig{
			APIKey:           cfg.SendGridAPIKey,
			StatusTemplateID: cfg.SendGridStatusTemplateID,
			From:             cfg.MailFrom,
			BaseURL:          cfg.SendGridBaseURL,
		}, nil)
	} else {
		slog.Warn("mail disabled: SENDGRID_API_KEY or SENDGRID_STATUS_TEMPLATE_ID not set")
	}

	hub := realtime.NewHub(cfg.FEURL)
	feed := realtime.NewOrderFeed(hub)

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	settingsRepo := infraRepo.NewSettingsGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, settingsRepo, cfg.CatalogCacheTTL)
	cartUC := usecase.NewCartUsecase(sessions, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txm, sessions, settingsRepo, orderListeners{feed: feed, cache: catalogUC})
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	adminCatalogUC := usecase.NewAdminCatalogUsecase(categoryRepo, productRepo, auditRepo, objects, catalogUC)
	adminSettingsUC := usecase.NewAdminSettingsUsecase(settingsRepo, auditRepo, objects, catalogUC)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, txm, auditRepo, mail)

	if err := authUC.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, userRepo, server.Handlers{
		Health:        handler.NewHealthHandler(sqlDB),
		Catalog:       handler.NewCatalogHandler(catalogUC),
		Cart:          handler.NewCartHandler(cartUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC),
		Auth:          handler.NewAuthHandler(authUC),
		Favorite:      handler.NewFavoriteHandler(favoriteUC),
		AdminCatalog:  handler.NewAdminCatalogHandler(adminCatalogUC),
		AdminSettings: handler.NewAdminSettingsHandler(adminSettingsUC),
		AdminOrder:    handler.NewAdminOrderHandler(adminOrderUC, hub),
		AdminAudit:    handler.NewAdminAuditHandler(usecase.NewAdminAuditUsecase(auditRepo)),
	})

	return server.Run(ctx, e, cfg.Addr())
}
