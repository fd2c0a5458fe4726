// Package catalog bulk-loads books from CSV into a user's shelf.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"bookswap/internal/microservices/http-api/models"
	"bookswap/internal/microservices/http-api/service"

	"golang.org/x/time/rate"
)

// Record is one parsed CSV row.
type Record struct {
	Line        int
	Title       string
	Author      string
	Description string
	ISBN        string
	ImageURL    string
}

// RowError ties a failure to its CSV line.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Report summarises an import run.
type Report struct {
	Created    int
	Duplicates int
	Failed     []RowError
}

var requiredColumns = []string{"title", "author", "description"}

// ParseCSV reads a header row followed by book rows. Columns are matched by
// name: title, author and description are required; isbn and image_url are
// optional.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, Record{
			Line:        line,
			Title:       field(row, "title"),
			Author:      field(row, "author"),
			Description: field(row, "description"),
			ISBN:        field(row, "isbn"),
			ImageURL:    field(row, "image_url"),
		})
	}
	return records, nil
}

func (r Record) validate() error {
	switch {
	case r.Title == "" || r.Author == "" || r.Description == "":
		return errors.New("title, author and description are required")
	case len(r.Title) > 255 || len(r.Author) > 255:
		return errors.New("title and author are limited to 255 characters")
	case len(r.ISBN) > 13:
		return errors.New("isbn is limited to 13 characters")
	}
	return nil
}

func (r Record) toModel() *models.Book {
	b := &models.Book{Title: r.Title, Author: r.Author, Description: r.Description}
	if r.ISBN != "" {
		isbn := r.ISBN
		b.ISBN = &isbn
	}
	if r.ImageURL != "" {
		u := r.ImageURL
		b.ImageURL = &u
	}
	return b
}

// Importer creates books through BookService so ownership stamping and isbn
// uniqueness apply exactly as they do over HTTP.
type Importer struct {
	books   service.BookService
	workers int
	limiter *rate.Limiter
}

// NewImporter runs up to workers inserts at once, at most perSecond per
// second (0 means unlimited).
func NewImporter(books service.BookService, workers int, perSecond float64) *Importer {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Importer{
		books:   books,
		workers: workers,
		limiter: rate.NewLimiter(limit, max(workers, 1)),
	}
}

// Import stores every valid record as a book owned by ownerID. Duplicate
// isbns are counted, not failed.
func (im *Importer) Import(ctx context.Context, ownerID string, records []Record) Report {
	var (
		mu     sync.Mutex
		report Report
	)
	fail := func(line int, err error) {
		mu.Lock()
		report.Failed = append(report.Failed, RowError{Line: line, Err: err})
		mu.Unlock()
	}

	pool := NewWorkerPool(ctx, im.workers)
	pool.Start()

	for _, rec := range records {
		if err := rec.validate(); err != nil {
			fail(rec.Line, err)
			continue
		}

		rec := rec
		submitted := pool.Submit(func(ctx context.Context) error {
			if err := im.limiter.Wait(ctx); err != nil {
				fail(rec.Line, err)
				return err
			}
			_, err := im.books.Create(ctx, ownerID, rec.toModel())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Created++
			case errors.Is(err, service.ErrDuplicateISBN):
				report.Duplicates++
			default:
				report.Failed = append(report.Failed, RowError{Line: rec.Line, Err: err})
			}
			return err
		})
		if !submitted {
			fail(rec.Line, ctx.Err())
		}
	}

	pool.Wait()

	slog.Info("catalog import finished",
		"owner_id", ownerID,
		"created", report.Created,
		"duplicates", report.Duplicates,
		"failed", len(report.Failed),
	)
	return report
}
