package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/healthease/healthease-api/internal/config"
	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/domain/appointment"
	"github.com/healthease/healthease-api/internal/domain/report"
	"github.com/healthease/healthease-api/internal/domain/sos"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "auth", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.Session{},
		&domain.AuditLog{},
		&appointment.Appointment{},
		&report.Report{},
		&sos.Alert{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{
			name:  "idx_reports_patient_upload",
			query: `CREATE INDEX IF NOT EXISTS idx_reports_patient_upload ON clinical.medical_reports (patient_id, created_at DESC)`,
		},
		{
			name:  "idx_appointments_patient_date",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_patient_date ON clinical.appointments (patient_id, date) WHERE deleted_at IS NULL AND status <> 'cancelled'`,
		},
		{
			name:  "idx_sos_alerts_active",
			query: `CREATE INDEX IF NOT EXISTS idx_sos_alerts_active ON clinical.sos_alerts (patient_id, created_at DESC) WHERE status = 'active'`,
		},
		{
			name:  "idx_sessions_user_active",
			query: `CREATE INDEX IF NOT EXISTS idx_sessions_user_active ON auth.sessions (user_id, expires_at) WHERE revoked_at IS NULL`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
