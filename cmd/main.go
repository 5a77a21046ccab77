package main

import (
	"context"
	"log"
	"os"

	"github.com/solipsisticstratosphere/Fit-Track/config"
	"github.com/solipsisticstratosphere/Fit-Track/routes"
	"github.com/solipsisticstratosphere/Fit-Track/utils"
)

func main() {
	config.LoadEnv()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	images, err := utils.NewS3Store(context.Background())
	if err != nil {
		log.Fatalf("S3 init: %v", err)
	}

	r := routes.SetupRouter(db, images)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
