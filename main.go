package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/api"
	"github.com/anasir-dev/portfolio-backend/auth"
	"github.com/anasir-dev/portfolio-backend/config"
	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	// The signing secret must be provisioned explicitly; there is no
	// development fallback.
	jwtSecret, err := config.Require(c, "JWT_SECRET")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Storage backend selection is sticky for the process lifetime.
	currentDB := database.Open(c)

	authService := auth.NewService(currentDB.AdminRepo(), auth.NewTokenService(jwtSecret))

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = authService.Seed(seedCtx,
		config.GetString(c, "ADMIN_USERNAME", ""),
		config.GetString(c, "ADMIN_PASSWORD", ""),
	)
	cancel()
	if err != nil {
		fmt.Printf("Error seeding admin record: %v\n", err)
		os.Exit(1)
	}

	assets, disk, err := buildAssetStore(c)
	if err != nil {
		fmt.Printf("Error initializing asset store: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(c, api.Deps{
		Database: currentDB,
		Auth:     authService,
		Assets:   assets,
		Disk:     disk,
	})
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// buildAssetStore picks the asset representation for this deployment: a
// configured uploads directory means disk-backed files served at /uploads/,
// otherwise images are embedded into records as data URIs.
func buildAssetStore(c map[string]string) (services.AssetStore, *services.DiskAssetStore, error) {
	dir := config.GetString(c, "UPLOADS_DIR", "")
	if dir == "" {
		log.Info().Msg("Asset storage: inline data URIs")
		return services.NewInlineAssetStore(), nil, nil
	}

	disk, err := services.NewDiskAssetStore(dir)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("dir", dir).Msg("Asset storage: disk")
	return disk, disk, nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
