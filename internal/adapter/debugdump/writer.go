package debugdump

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgersync/internal/domain"
)

// File names of the three snapshots.
const (
	ExistingFile = "deb_existing_activities.json"
	NewFile      = "deb_new_activities.json"
	DiffFile     = "deb_diff_activities.json"
)

type activityJSON struct {
	AccountID     string                `json:"accountId"`
	Currency      string                `json:"currency"`
	DataSource    string                `json:"dataSource"`
	Date          string                `json:"date"`
	Fee           decimal.Decimal       `json:"fee"`
	Quantity      decimal.Decimal       `json:"quantity"`
	Symbol        string                `json:"symbol,omitempty"`
	Type          string                `json:"type"`
	UnitPrice     decimal.Decimal       `json:"unitPrice"`
	Comment       string                `json:"comment,omitempty"`
	SymbolProfile *domain.SymbolProfile `json:"SymbolProfile,omitempty"`
}

// Writer dumps activity snapshots as JSON files into a directory.
type Writer struct {
	dir    string
	logger zerolog.Logger
}

// NewWriter creates a new Writer. An empty dir means the working directory.
func NewWriter(dir string, logger zerolog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Dump writes the existing snapshot, the normalized activities and the diff.
func (w *Writer) Dump(ctx context.Context, existing, normalized, diff []domain.Activity) error {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return fmt.Errorf("create debug dir %s: %w", w.dir, err)
		}
	}

	files := []struct {
		name string
		acts []domain.Activity
	}{
		{ExistingFile, existing},
		{NewFile, normalized},
		{DiffFile, diff},
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(w.dir, f.name)
		if err := writeActivities(path, f.acts); err != nil {
			return err
		}
		w.logger.Warn().Str("path", path).Int("activities", len(f.acts)).Msg("debug files enabled, wrote snapshot")
	}
	return nil
}

func writeActivities(path string, acts []domain.Activity) error {
	out := make([]activityJSON, len(acts))
	for i, a := range acts {
		out[i] = activityJSON{
			AccountID:     a.AccountID,
			Currency:      a.Currency,
			DataSource:    a.DataSource,
			Date:          a.Date,
			Fee:           a.Fee,
			Quantity:      a.Quantity,
			Symbol:        a.Symbol,
			Type:          string(a.Type),
			UnitPrice:     a.UnitPrice,
			Comment:       a.Comment,
			SymbolProfile: a.SymbolProfile,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
