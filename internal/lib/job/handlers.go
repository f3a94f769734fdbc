package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/registry/internal/lib/email"
	"github.com/hibiken/asynq"
)

// handleLowStockTask processes a low-stock alert.
//
// The alert is always logged. It is also emailed when both an email client
// and an alert recipient are configured; a send failure is returned so
// Asynq retries the task.
func (j *JobService) handleLowStockTask(ctx context.Context, t *asynq.Task) error {
	var p LowStockPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal low stock payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Warn().
		Str("type", "low_stock").
		Int64("supply_id", p.SupplyID).
		Str("code", p.Code).
		Int32("stock_quantity", p.StockQuantity).
		Int32("min_stock_level", p.MinStockLevel).
		Msg("Medical supply is low on stock")

	if j.email == nil || j.alertTo == "" {
		return nil
	}

	err := j.email.SendLowStockAlert(ctx, j.alertTo, email.LowStockData{
		Name:            p.Name,
		Code:            p.Code,
		StockQuantity:   p.StockQuantity,
		MinStockLevel:   p.MinStockLevel,
		StorageLocation: p.StorageLocation,
	})
	if err != nil {
		j.logger.Error().
			Str("type", "low_stock").
			Str("to", j.alertTo).
			Err(err).
			Msg("Failed to send low stock email")
		return err
	}

	j.logger.Info().
		Str("type", "low_stock").
		Str("to", j.alertTo).
		Msg("Successfully sent low stock email")

	return nil
}
