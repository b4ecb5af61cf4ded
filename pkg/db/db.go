// Package db provides the shared warehouse connection.
package db

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	prometheusplugin "gorm.io/plugin/prometheus"

	"github.com/retailworks/retailpulse/internal/config"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

func New(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.WarehouseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	if err := conn.Use(prometheusplugin.New(prometheusplugin.Config{
		DBName:          "retailpulse",
		RefreshInterval: 15,
	})); err != nil {
		return nil, fmt.Errorf("register db metrics: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("ping warehouse: %w", err)
			}
			log.Info("warehouse connected")
			return nil
		},
		OnStop: func(context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return conn, nil
}
