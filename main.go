package main

import (
	"fmt"
	"log"
	"os"

	"be04/auth"
	"be04/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	appCfg      Config
	logger      *zap.Logger
	tokenCodec  *auth.TokenCodec
	credHasher  auth.CredentialHasher
	authService *auth.Service
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}
	appCfg = cfg

	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer logger.Sync()

	tokenCodec, err = auth.NewTokenCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatal("token configuration:", err)
	}
	credHasher = auth.NewBcryptHasher(0)

	// Support a lightweight migrate command: `./be04_app migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		fmt.Println("migration and seeding completed")
		return
	}

	initDB(cfg)
	authService = auth.NewService(store.NewUsers(db), credHasher, tokenCodec, logger)

	r := gin.Default()

	setupRoutes(r)

	r.Run(":" + cfg.Port)
}
