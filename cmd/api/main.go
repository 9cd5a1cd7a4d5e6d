package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "credentia/internal/adapter/http"
	"credentia/internal/adapter/metadata"
	appmw "credentia/internal/adapter/middleware"
	"credentia/internal/adapter/repository/mysql"
	"credentia/internal/config"
	escrowDomain "credentia/internal/domain/escrow"
	loanDomain "credentia/internal/domain/loan"
	platformDomain "credentia/internal/domain/platform"
	walletDomain "credentia/internal/domain/wallet"
	"credentia/internal/events"
	"credentia/internal/infrastructure/cache"
	"credentia/internal/infrastructure/db"
	"credentia/internal/infrastructure/stream"
	loanUC "credentia/internal/usecase/loan"
	platformUC "credentia/internal/usecase/platform"
	walletUC "credentia/internal/usecase/wallet"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&platformDomain.Platform{},
		&loanDomain.Loan{},
		&escrowDomain.Vault{},
		&walletDomain.Account{},
		&walletDomain.Collateral{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kp, err := stream.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatal(err)
		}
		defer kp.Close()
		pub = kp
	}

	u := mysql.NewGormUoW(gdb)
	loanUsecase := loanUC.NewUsecase(u, metadata.NewCollectionChecker(), pub)
	platformUsecase := platformUC.NewUsecase(u)
	walletUsecase := walletUC.NewUsecase(u)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loanUsecase)
	platformHandler := httpadp.NewPlatformHandler(platformUsecase)
	walletHandler := httpadp.NewWalletHandler(walletUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.POST("/platform", platformHandler.InitializePlatform, idemp)
	e.GET("/platform", platformHandler.GetPlatform)

	e.POST("/loans", loanHandler.RequestLoan, idemp)
	e.GET("/loans/:loan_id", loanHandler.GetLoan)
	e.POST("/loans/:loan_id/fund", loanHandler.FundLoan, idemp)
	e.POST("/loans/:loan_id/resolve", loanHandler.ResolveLoan, idemp)
	e.POST("/loans/:loan_id/cancel", loanHandler.CancelLoan, idemp)
	e.POST("/loans/:loan_id/default", loanHandler.DefaultLoan, idemp)

	e.POST("/accounts", walletHandler.CreateAccount, idemp)
	e.GET("/accounts/:owner_id", walletHandler.GetAccount)
	e.POST("/collaterals", walletHandler.RegisterCollateral, idemp)
	e.GET("/collaterals/:collateral_id", walletHandler.GetCollateral)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
