package main

import (
	"os"

	"github.com/shopline/storefront/internal/app"
	config "github.com/shopline/storefront/internal/cfg"
	"github.com/shopline/storefront/pkg/logger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Каталог товаров с сессионной корзиной и админ-панелью

//	@host		localhost:8080
//	@BasePath	/

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
