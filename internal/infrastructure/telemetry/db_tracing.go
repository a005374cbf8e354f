package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnableDBTracing registers the otelgorm plugin so every query produces a
// span under the active trace. No-op when telemetry is disabled.
func EnableDBTracing(db *gorm.DB, tp *TracerProvider, dbName string) error {
	if !tp.IsEnabled() {
		tp.logger.Debug("DB tracing skipped, telemetry disabled")
		return nil
	}

	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return fmt.Errorf("failed to register otelgorm plugin: %w", err)
	}

	tp.logger.Info("Database tracing enabled", zap.String("db_name", dbName))
	return nil
}
