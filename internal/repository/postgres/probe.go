package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Probe реализует repository.StorageProbe поверх пула соединений gorm
type Probe struct {
	db *gorm.DB
}

// NewProbe создает проверку доступности базы
func NewProbe(db *gorm.DB) *Probe {
	return &Probe{db: db}
}

// Ping проверяет соединение с базой
func (p *Probe) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return translateError(err, "ping")
	}
	return translateError(sqlDB.PingContext(ctx), "ping")
}
