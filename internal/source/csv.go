// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/types"
)

// CSV reads user records from a comma separated file with a header row.
type CSV struct {
	path string

	logger logging.LoggerInterface
}

func (s *CSV) Path() string {
	return s.path
}

// Records reads every data row of the file. An empty file yields no
// records; a missing file is an error.
func (s *CSV) Records(ctx context.Context) ([]types.Record, error) {
	f, err := os.Open(filepath.Clean(s.path)) // #nosec G304 - path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := s.read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", s.path, err)
	}

	s.logger.Debugf("Read %d rows from %s", len(records), s.path)

	return records, nil
}

func (s *CSV) read(ctx context.Context, r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	dec, err := csvutil.NewDecoder(&fixedWidthReader{r: cr, width: len(header)}, header...)
	if err != nil {
		return nil, err
	}
	dec.Map = func(field, _ string, _ any) string {
		return strings.TrimSpace(field)
	}

	records := make([]types.Record, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec types.Record
		if err := dec.Decode(&rec); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		raw := dec.Record()
		rec.Columns = make(map[string]string, len(header))
		for i, name := range header {
			rec.Columns[name] = raw[i]
		}

		records = append(records, rec)
	}

	return records, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

// fixedWidthReader pads short rows and truncates long ones to the header
// width.
type fixedWidthReader struct {
	r     *csv.Reader
	width int
}

func (f *fixedWidthReader) Read() ([]string, error) {
	record, err := f.r.Read()
	if err != nil {
		return nil, err
	}

	if len(record) > f.width {
		return record[:f.width], nil
	}
	for len(record) < f.width {
		record = append(record, "")
	}
	return record, nil
}

func NewCSV(path string, logger logging.LoggerInterface) *CSV {
	s := new(CSV)

	s.path = path
	s.logger = logger

	return s
}
