package router

import (
	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	pginfra "github.com/ecosoft-dev/ecosoft-api/internal/infrastructure/postgres"
	handlers "github.com/ecosoft-dev/ecosoft-api/internal/interface/http"
	"github.com/ecosoft-dev/ecosoft-api/internal/router/modules"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
)

// InitModules builds every feature module from the container singletons
// and registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	productRepo := pginfra.NewProductRepository(container.GetPGPool())
	saleRepo := pginfra.NewSaleRepository(container.GetPGPool())

	authSvc := application.NewAuthService(userRepo, logger)
	userSvc := application.NewUserService(userRepo, logger, container.GetES(), cfg.ESUsersIndex)
	productSvc := application.NewProductService(productRepo, logger)
	saleSvc := application.NewSaleService(saleRepo, logger)
	fileSvc := application.NewFileService(container.GetGCS(), cfg.GCSBucket, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure, cfg.SessionTTL)

	authHandler := handlers.NewAuthHandler(authSvc, cookies, logger, container.GetRabbitPub(), cfg.MailSendEnabled)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	productHandler := handlers.NewProductHandler(productSvc, logger)
	saleHandler := handlers.NewSaleHandler(saleSvc, logger)
	fileHandler := handlers.NewFileHandler(fileSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewUserModule(userHandler, authSvc))
	r.Add(modules.NewProductModule(productHandler, authSvc))
	r.Add(modules.NewSaleModule(saleHandler, authSvc))
	r.Add(modules.NewFileModule(fileHandler, authSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
