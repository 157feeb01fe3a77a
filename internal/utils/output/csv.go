package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/law-makers/holdings/pkg/models"
)

// CSVWriter serializes rows from concurrent workers onto one CSV stream.
// Each WriteRows call holds the lock for the whole batch, so rows from a
// single page stay contiguous.
type CSVWriter struct {
	mu     sync.Mutex
	w      *csv.Writer
	closer io.Closer
	rows   int
	width  int
}

// NewCSVWriter wraps w. If w is an io.Closer it is closed by Close.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	return cw
}

// CreateCSV creates (or truncates) path and returns a writer for it
func CreateCSV(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return NewCSVWriter(file), nil
}

// WriteHeader writes the header row and fixes the expected row width
func (c *CSVWriter) WriteHeader(header []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.width = len(header)
	if err := c.w.Write(header); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// WriteRows appends rows in order and flushes them to the underlying writer
func (c *CSVWriter) WriteRows(rows []models.Row) error {
	if len(rows) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		if c.width > 0 && len(row) != c.width {
			return fmt.Errorf("row has %d fields, header has %d", len(row), c.width)
		}
		if err := c.w.Write(row); err != nil {
			return err
		}
		c.rows++
	}
	c.w.Flush()
	return c.w.Error()
}

// Rows returns the number of data rows written so far
func (c *CSVWriter) Rows() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

// Close flushes pending output and closes the underlying file, if any
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Flush()
	err := c.w.Error()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
		c.closer = nil
	}
	return err
}
