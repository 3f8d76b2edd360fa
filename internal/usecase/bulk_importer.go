package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/domain"
)

// ImportResult describes a bulk import.
type ImportResult struct {
	Chunks    int
	Submitted int
	Imported  int

	// FailedChunk is the 1-based index of the chunk that failed, 0 on success.
	FailedChunk   int
	FailedPayload []domain.Activity
}

// Succeeded reports whether every chunk was accepted.
func (r *ImportResult) Succeeded() bool {
	return r.FailedChunk == 0
}

// BulkImporter submits activities in sorted fixed-size chunks, one chunk at a time.
type BulkImporter struct {
	importer  ActivityImporter
	chunkSize int
	logger    zerolog.Logger
}

// NewBulkImporter creates a new BulkImporter.
func NewBulkImporter(importer ActivityImporter, logger zerolog.Logger) *BulkImporter {
	return &BulkImporter{
		importer:  importer,
		chunkSize: ImportChunkSize,
		logger:    logger,
	}
}

// Import submits activities chunk by chunk and stops at the first rejected chunk.
// Chunks accepted before the failure stay applied.
func (b *BulkImporter) Import(ctx context.Context, activities []domain.Activity) (*ImportResult, error) {
	chunks := Chunk(activities, b.chunkSize)
	result := &ImportResult{Chunks: len(chunks)}

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sorted := SortByDate(chunk)
		result.Submitted++

		if err := b.importer.ImportActivities(ctx, sorted); err != nil {
			result.FailedChunk = i + 1
			result.FailedPayload = sorted
			b.logger.Error().Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Int("imported", result.Imported).
				Msg("bulk import aborted")
			return result, fmt.Errorf("%w: chunk %d of %d (%d activities, %d already imported): %w",
				domain.ErrImportFailed, i+1, len(chunks), len(sorted), result.Imported, err)
		}

		result.Imported += len(sorted)
		b.logger.Info().Int("chunk", i+1).Int("activities", len(sorted)).Msg("imported activities")
	}

	return result, nil
}

// Chunk splits activities into consecutive groups of at most size elements.
func Chunk(activities []domain.Activity, size int) [][]domain.Activity {
	if size <= 0 {
		size = ImportChunkSize
	}

	chunks := make([][]domain.Activity, 0, (len(activities)+size-1)/size)
	for start := 0; start < len(activities); start += size {
		end := min(start+size, len(activities))
		chunks = append(chunks, activities[start:end])
	}
	return chunks
}

// SortByDate returns a copy of activities in ascending date order, keeping the
// relative order of activities on the same date.
func SortByDate(activities []domain.Activity) []domain.Activity {
	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b domain.Activity) int {
		return strings.Compare(a.Date, b.Date)
	})
	return sorted
}
