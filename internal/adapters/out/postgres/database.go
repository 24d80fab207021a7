// Package postgres connects the delivery ledger to PostgreSQL through GORM.
//
// Usage:
//
//	db, err := postgres.Open(postgres.Config{Host: "localhost", Port: "5432", ...})
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(db); err != nil {
//	    return err
//	}
//	ledger := deliveryrepo.NewGormDeliveryRepository(db, uuid.NewString())
package postgres

import (
	"fmt"
	"strings"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/pkg/errs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the DB_* connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// Enabled reports whether enough settings are present to connect.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Name != ""
}

// DSN renders the settings in libpq key=value form. Values that are empty or contain
// spaces, quotes or backslashes are single-quoted and escaped.
func (c Config) DSN() string {
	parts := []string{
		"host=" + dsnValue(c.Host),
		"dbname=" + dsnValue(c.Name),
	}
	if c.Port != "" {
		parts = append(parts, "port="+dsnValue(c.Port))
	}
	if c.User != "" {
		parts = append(parts, "user="+dsnValue(c.User))
	}
	if c.Password != "" {
		parts = append(parts, "password="+dsnValue(c.Password))
	}
	sslMode := c.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts = append(parts, "sslmode="+dsnValue(sslMode))
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

// Open connects with GORM's own logger silenced; the ledger logs its failures itself.
func Open(cfg Config) (*gorm.DB, error) {
	if !cfg.Enabled() {
		return nil, errs.NewValueIsRequiredError("DB_HOST, DB_NAME")
	}
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// legacyReservationIndex made reservation ids unique across runs.
const legacyReservationIndex = "idx_deliveries_reservation_id"

// Migrate creates or updates the ledger table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
		return fmt.Errorf("migrate deliveries: %w", err)
	}
	migrator := db.Migrator()
	if migrator.HasIndex(&deliveryrepo.DeliveryDTO{}, legacyReservationIndex) {
		if err := migrator.DropIndex(&deliveryrepo.DeliveryDTO{}, legacyReservationIndex); err != nil {
			return fmt.Errorf("migrate deliveries: %w", err)
		}
	}
	return nil
}
