package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mailer"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無ければ無いで良い（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Size{},
		&model.Extra{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.CancellationRequest{},
		&model.Refund{},
		&model.PrintJob{},
		&model.EmailConfirmation{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	catalogRepo := infraRepo.NewCatalogGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	emailRepo := infraRepo.NewEmailGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	smtpMailer := mailer.NewSMTPMailer(cfg)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, catalogRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, catalogRepo)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, cfg)
	cancellationUC := usecase.NewCancellationUsecase(txManager, cfg)
	printUC := usecase.NewPrintQueueUsecase(txManager)
	// メール送信はリクエストTxではなくルートのDBハンドルで動く
	emailUC := usecase.NewEmailUsecase(orderRepo, emailRepo, userRepo, smtpMailer, logger)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Cancellation: handler.NewCancellationHandler(cancellationUC),
		Print:        handler.NewPrintHandler(printUC),
		Notification: handler.NewNotificationHandler(emailUC),
	}

	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port
	logger.Info("starting api", zap.String("addr", addr), zap.String("env", cfg.GoEnv))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.GoEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
