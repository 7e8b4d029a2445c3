package main

import (
	"fmt"
	"time"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/config"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/database"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
)

// initGateway connects to the configured database and returns the service
// façade the commands call through.
func initGateway() (*services.Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := database.NewManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return services.NewGateway(manager.DB()), nil
}

// parseDateTime accepts "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" (midnight).
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
}
