// Package database is the trade journal. The trend bot records every
// entry and exit, and the scanner can log each cycle's best route.
// Persistence failures are logged by callers and never fatal.
package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

// Models

// Trade is one trend-bot fill.
type Trade struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	Symbol    string          `gorm:"index"`
	Action    string          // "buy" or "sell"
	Quantity  decimal.Decimal `gorm:"type:decimal(20,8)"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8)"`
	Reason    string          // entry signal or exit reason
	CreatedAt time.Time
}

// OpportunityLog is a per-cycle record of the best ranked route.
type OpportunityLog struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	Route     string          `gorm:"index"`
	Profit    decimal.Decimal `gorm:"type:decimal(20,8)"`
	Pct       decimal.Decimal `gorm:"type:decimal(10,4)"`
	Liquidity decimal.Decimal `gorm:"type:decimal(20,2)"`
	CreatedAt time.Time
}

// New opens the journal. A postgres:// DSN selects Postgres, anything
// else is treated as a SQLite path.
func New(dbPath string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(dbPath, "postgres://") || strings.HasPrefix(dbPath, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Database connected (PostgreSQL)")
	} else {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", dbPath).Msg("Database initialized (SQLite)")
	}

	if err := db.AutoMigrate(&Trade{}, &OpportunityLog{}); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// Trade operations

func (d *Database) SaveTrade(trade *Trade) error {
	return d.db.Create(trade).Error
}

func (d *Database) RecentTrades(symbol string, limit int) ([]Trade, error) {
	var trades []Trade
	err := d.db.Where("symbol = ?", symbol).
		Order("created_at desc").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// Opportunity operations

func (d *Database) SaveOpportunity(opp *OpportunityLog) error {
	return d.db.Create(opp).Error
}

func (d *Database) RecentOpportunities(limit int) ([]OpportunityLog, error) {
	var opps []OpportunityLog
	err := d.db.Order("created_at desc").Limit(limit).Find(&opps).Error
	return opps, err
}
