package sheetxml_test

import (
	"context"
	"errors"
	"testing"

	sheetxml "github.com/ideamans/go-sheetxml"
)

func TestDocument_Export(t *testing.T) {
	errTemporary := errors.New("temporary failure")

	tests := []struct {
		name       string
		maxRetries int
		failures   int
		wantCalls  int
		wantErr    bool
	}{
		{"first attempt", 3, 0, 1, false},
		{"recovers after retries", 3, 2, 3, false},
		{"gives up", 1, 5, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sheetxml.New("tester", &sheetxml.Config{MaxRetries: tt.maxRetries})
			sheet, _ := doc.AddSheet("Sheet1")
			if err := sheet.AddRow([]interface{}{1, "hello"}); err != nil {
				t.Fatal(err)
			}

			calls := 0
			exporter := sheetxml.ExporterFunc(func(ctx context.Context, layout *sheetxml.Layout) error {
				calls++
				if layout.Sheets[0].Name != "Sheet1" {
					t.Errorf("layout sheet = %q, want Sheet1", layout.Sheets[0].Name)
				}
				if calls <= tt.failures {
					return errTemporary
				}
				return nil
			})

			err := doc.Export(context.Background(), exporter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Export() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, sheetxml.ErrIOFailure) || !errors.Is(err, errTemporary) {
					t.Errorf("Export() error = %v, want ErrIOFailure wrapping the last failure", err)
				}
			}
			if calls != tt.wantCalls {
				t.Errorf("exporter called %d times, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestDocument_Export_Cancelled(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	if _, err := doc.AddSheet("Sheet1"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	exporter := sheetxml.ExporterFunc(func(ctx context.Context, layout *sheetxml.Layout) error {
		calls++
		cancel()
		return errors.New("unavailable")
	})

	err := doc.Export(ctx, exporter)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Export() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("exporter called %d times, want 1", calls)
	}
}
