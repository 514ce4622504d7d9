package Dashboard

import (
	"context"
	"log/slog"

	"SpeedWatch/Models"
)

// HistorySource serves the one-shot bulk history.
type HistorySource interface {
	Violations(ctx context.Context) ([]Models.ViolationRecord, error)
}

// ViolationTable is the violation log. It only inserts: the bulk load is
// kept in server order and live records go on top. It never re-sorts and
// never de-duplicates.
type ViolationTable struct {
	board  *State
	logger *slog.Logger
}

func NewViolationTable(board *State, logger *slog.Logger) *ViolationTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViolationTable{board: board, logger: logger}
}

// LoadInitial replaces the table with records, in the given order.
func (t *ViolationTable) LoadInitial(records []Models.ViolationRecord) {
	t.board.replaceRecords(records)
}

// PrependLive puts one record at the head of the table.
func (t *ViolationTable) PrependLive(record Models.ViolationRecord) {
	t.board.prependRecord(record)
}

// Rows renders the table.
func (t *ViolationTable) Rows() []Models.ViolationRow {
	return t.board.Rows()
}

// LoadHistory fetches the bulk history and loads it. A failed or corrupt
// batch leaves an empty table; the failure is logged, not shown.
func (t *ViolationTable) LoadHistory(ctx context.Context, source HistorySource) error {
	records, err := source.Violations(ctx)
	if err != nil {
		t.logger.Error("failed to load violation history", "err", err)
		t.LoadInitial(nil)
		return err
	}
	t.LoadInitial(records)
	t.logger.Info("violation history loaded", "rows", len(records))
	return nil
}
