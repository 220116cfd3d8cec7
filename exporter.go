package sheetxml

import (
	"context"
	"fmt"
	"time"
)

// Exporter delivers a resolved document to a backend other than the
// SpreadsheetML file, e.g. an .xlsx file or an online spreadsheet.
type Exporter interface {
	Export(ctx context.Context, layout *Layout) error
}

// ExporterFunc adapts a function to the Exporter interface
type ExporterFunc func(ctx context.Context, layout *Layout) error

// Export implements Exporter
func (f ExporterFunc) Export(ctx context.Context, layout *Layout) error {
	return f(ctx, layout)
}

// Export resolves the document once and hands it to e, retrying failed
// exports with exponential backoff up to Config.MaxRetries times.
func (d *Document) Export(ctx context.Context, e Exporter) error {
	layout, err := d.Layout()
	if err != nil {
		return err
	}

	for i := 0; i <= d.config.MaxRetries; i++ {
		err = e.Export(ctx, layout)
		if err == nil {
			return nil
		}

		if i < d.config.MaxRetries {
			backoff := retryBackoff(i)
			d.config.Logger.Info("export failed, retrying", "attempt", i+1, "backoff", backoff, "error", err.Error())

			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", ErrIOFailure, ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("%w: failed after %d retries: %w", ErrIOFailure, d.config.MaxRetries, err)
}

const maxBackoff = 2 * time.Second

// retryBackoff returns the wait before retry attempt+1: 100ms doubling up to maxBackoff
func retryBackoff(attempt int) time.Duration {
	backoff := 100 * time.Millisecond
	for i := 0; i < attempt && backoff < maxBackoff; i++ {
		backoff *= 2
	}
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}
