package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/rozennrd/dave-backend/internal/app"
)

// @title           Dave Backend API
// @version         1.0
// @description     Бэкенд мобильного приложения Dave: аккаунты, растения пользователя, справочник видов.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
