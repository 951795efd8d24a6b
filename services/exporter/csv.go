package exporter

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/logger"
	pkgerrors "sjsage522/pricecompare/pkg/errors"
)

// Header is the fixed column order of every export
var Header = []string{"Product Name", "Price", "Store", "URL"}

// TopFileName is the destination of the cheapest-N export
const TopFileName = "top5_products.csv"

// Exporter persists a listing set to destination
type Exporter interface {
	Export(listings []crawler.Listing, destination string) error
}

// CSVExporter writes listings as comma separated values.
// A write goes to a temporary file next to the destination and is renamed
// over it, so the destination is either fully replaced or left untouched.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export overwrites destination with the header and one row per listing
func (e *CSVExporter) Export(listings []crawler.Listing, destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pkgerrors.NewExport(destination, "could not create output dir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".*.tmp")
	if err != nil {
		return pkgerrors.NewExport(destination, "could not create temp file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := WriteCSV(tmp, listings); err != nil {
		return pkgerrors.NewExport(destination, "csv write error", err)
	}
	if err := tmp.Sync(); err != nil {
		return pkgerrors.NewExport(destination, "could not flush file", err)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.NewExport(destination, "could not close file", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return pkgerrors.NewExport(destination, "could not set permissions", err)
	}
	if err := os.Rename(tmpName, destination); err != nil {
		return pkgerrors.NewExport(destination, "could not replace destination", err)
	}
	committed = true

	logger.ForExporter().Info().
		Int("listings", len(listings)).
		Str("destination", destination).
		Msg("Saved listings")
	return nil
}

// WriteCSV writes the header and rows to w.
// Prices are plain decimals without grouping or currency symbol.
func WriteCSV(w io.Writer, listings []crawler.Listing) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, l := range listings {
		if err := writer.Write([]string{
			l.Name,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			l.Source,
			l.Link,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FileName returns the export file name for a search term.
// Spaces and path separators become underscores.
func FileName(query string) string {
	return strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(query) + "_results.csv"
}
