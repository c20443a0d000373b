// Package widget exports a read-only snapshot of today's derived values for
// companion surfaces.
package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/recurrence"
	"github.com/julianstephens/tally/internal/storage"
)

// Build assembles the snapshot from today's summary and the task list.
func Build(summary models.DaySummary, tasks []models.RecurringTask, now time.Time) models.WidgetSnapshot {
	snap := models.WidgetSnapshot{
		Score:           summary.Score,
		HabitsCompleted: summary.HabitsCompleted,
		HabitsTotal:     summary.HabitsTotal,
		WaterCurrent:    summary.WaterOunces,
		WaterTarget:     summary.WaterTarget,
		DidReadToday:    summary.DidRead(),
		UpdatedAt:       now,
	}
	if next, ok := recurrence.NextUp(tasks, now); ok {
		snap.NextCleaningTaskTitle = next.Title
	}
	return snap
}

// Exporter writes snapshots to the store and, when path is set, to a JSON
// file that other processes can poll.
type Exporter struct {
	doc  *storage.Document[models.WidgetSnapshot]
	path string
}

func NewExporter(p storage.Provider, locks *storage.Locks, path string) *Exporter {
	return &Exporter{
		doc:  storage.NewDocument[models.WidgetSnapshot](p, locks, constants.KeyWidgetSnapshot),
		path: path,
	}
}

// Export stores snap. Failures are logged and dropped; readers keep the
// previous snapshot.
func (e *Exporter) Export(snap models.WidgetSnapshot) {
	if err := e.doc.Put(snap); err != nil {
		logger.Warn("Failed to store widget snapshot", "error", err)
	}
	if e.path == "" {
		return
	}
	if err := writeFileAtomic(e.path, snap); err != nil {
		logger.Warn("Failed to write widget snapshot file", "path", e.path, "error", err)
	}
}

// Current returns the last exported snapshot.
func (e *Exporter) Current() (models.WidgetSnapshot, bool) {
	return e.doc.Get()
}

func writeFileAtomic(path string, snap models.WidgetSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".widget-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
