// Package csvfile implements driven.PostSource over a CSV export of
// subreddit posts (the Kaggle "r/food" dataset layout).
//
// Required columns are title and timestamp. Optional columns are id, body,
// score and comms_num. Rows with a missing or unparsable timestamp are
// skipped; rows without an id get a generated one.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Verify interface compliance.
var _ driven.PostSource = (*Source)(nil)

// TimestampLayout is the layout of the timestamp column, in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultSource is the source group assigned to rows.
const DefaultSource = "food"

// Column names.
const (
	colID        = "id"
	colTitle     = "title"
	colBody      = "body"
	colTimestamp = "timestamp"
	colScore     = "score"
	colComments  = "comms_num"
)

// ErrMissingColumn indicates a required header is absent.
var ErrMissingColumn = errors.New("csvfile: missing required column")

// Source reads posts from a CSV file.
type Source struct {
	path   string
	source string
	now    func() time.Time
}

// New creates a CSV source. An empty group uses DefaultSource.
func New(path, group string) *Source {
	if strings.TrimSpace(group) == "" {
		group = DefaultSource
	}
	return &Source{path: path, source: group, now: time.Now}
}

// Name returns "csv:<file name>".
func (s *Source) Name() string {
	return "csv:" + filepath.Base(s.path)
}

// Fetch reads every valid row from the file.
func (s *Source) Fetch(ctx context.Context) ([]domain.Document, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	return s.Read(ctx, f)
}

// Read parses posts from r.
func (s *Source) Read(ctx context.Context, r io.Reader) ([]domain.Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{colTitle, colTimestamp} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	fetchedAt := s.now().UTC()
	var docs []domain.Document
	skipped := 0
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		ts := strings.TrimSpace(field(colTimestamp))
		if ts == "" {
			skipped++
			continue
		}
		createdAt, err := time.ParseInLocation(TimestampLayout, ts, time.UTC)
		if err != nil {
			logger.Debug("line %d: timestamp %q: %v", line, ts, err)
			skipped++
			continue
		}

		id := strings.TrimSpace(field(colID))
		if id == "" {
			id = uuid.NewString()
		}

		docs = append(docs, domain.Document{
			ExternalID: id,
			Source:     s.source,
			Title:      field(colTitle),
			Body:       field(colBody),
			CreatedAt:  createdAt,
			Score:      atoi(field(colScore)),
			Comments:   atoi(field(colComments)),
			FetchedAt:  fetchedAt,
		})
	}

	if skipped > 0 {
		logger.Info("%s: skipped %d rows without a valid timestamp", s.Name(), skipped)
	}
	return docs, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

// atoi parses an integer count, accepting "12.0". Invalid values are 0.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
