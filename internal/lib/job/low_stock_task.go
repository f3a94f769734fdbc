package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/registry/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskLowStock is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskLowStock = "supply:low_stock"

	// lowStockDedupWindow suppresses identical alerts for the same supply
	// state enqueued within the window.
	lowStockDedupWindow = time.Hour
)

// LowStockPayload is the JSON payload of a low-stock alert task.
type LowStockPayload struct {
	SupplyID        int64  `json:"supply_id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	StockQuantity   int32  `json:"stock_quantity"`
	MinStockLevel   int32  `json:"min_stock_level"`
	StorageLocation string `json:"storage_location,omitempty"`
}

// NewLowStockPayload snapshots the fields of supply the alert needs.
func NewLowStockPayload(supply *model.MedicalSupply) LowStockPayload {
	p := LowStockPayload{
		SupplyID: supply.ID,
		Name:     supply.Name,
		Code:     supply.Code,
	}
	if supply.StockQuantity != nil {
		p.StockQuantity = *supply.StockQuantity
	}
	if supply.MinStockLevel != nil {
		p.MinStockLevel = *supply.MinStockLevel
	}
	if supply.StorageLocation != nil {
		p.StorageLocation = *supply.StorageLocation
	}
	return p
}

// NewLowStockTask constructs an Asynq task for a low-stock alert.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("critical"): running out of supplies is urgent
//   - Timeout(30s): kill the task if the handler runs longer than 30 seconds
//   - Unique: identical payloads within lowStockDedupWindow are dropped
func NewLowStockTask(payload LowStockPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskLowStock,
		data,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
		asynq.Unique(lowStockDedupWindow),
	), nil
}

// EnqueueLowStockAlert schedules an alert for supply. A duplicate of an
// alert already queued is not an error.
func (j *JobService) EnqueueLowStockAlert(ctx context.Context, supply *model.MedicalSupply) error {
	task, err := NewLowStockTask(NewLowStockPayload(supply))
	if err != nil {
		return fmt.Errorf("failed to build low stock task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue low stock task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Int64("supply_id", supply.ID).
		Msg("Enqueued low stock alert")

	return nil
}
