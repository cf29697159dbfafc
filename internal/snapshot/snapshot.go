// Package snapshot reads console document exports: a JSON object mapping
// collection names to arrays of documents.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
)

// Decode reads a whole export. Unknown top-level keys are ignored, whatever
// their shape; a known collection must be an array of documents.
func Decode(r io.Reader) (*entity.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrMalformedExport, err)
	}
	s := &entity.Snapshot{}
	for _, name := range entity.Collections {
		body, ok := raw[name]
		if !ok {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var docs []map[string]any
		if err := dec.Decode(&docs); err != nil {
			return nil, fmt.Errorf("%w: collection %s: %v", gerr.ErrMalformedExport, name, err)
		}
		recs := make([]entity.Record, 0, len(docs))
		for _, d := range docs {
			recs = append(recs, document(d))
		}
		s.SetCollection(name, recs)
	}
	return s, nil
}

// DecodeDocument reads a single stored document body.
func DecodeDocument(b []byte) (entity.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrMalformedExport, err)
	}
	return document(m), nil
}

func document(m map[string]any) entity.Record {
	r := make(entity.Record, len(m))
	for k, v := range m {
		r[k] = normalize(v)
	}
	return r
}

// normalize turns nested objects into records and timestamp wrappers into
// entity.FirestoreTimestamp values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if ts, ok := timestamp(t); ok {
			return ts
		}
		return document(t)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}

func timestamp(m map[string]any) (entity.FirestoreTimestamp, bool) {
	if len(m) != 2 {
		return entity.FirestoreTimestamp{}, false
	}
	for _, pair := range [][2]string{{"_seconds", "_nanoseconds"}, {"seconds", "nanoseconds"}} {
		sec, ok1 := m[pair[0]].(json.Number)
		nsec, ok2 := m[pair[1]].(json.Number)
		if !ok1 || !ok2 {
			continue
		}
		s, err1 := sec.Int64()
		n, err2 := nsec.Int64()
		if err1 != nil || err2 != nil {
			return entity.FirestoreTimestamp{}, false
		}
		return entity.FirestoreTimestamp{Seconds: s, Nanoseconds: n}, true
	}
	return entity.FirestoreTimestamp{}, false
}

// File serves snapshots from an export on disk. The file is read on every
// load so edits are picked up without a restart.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

// LoadSnapshot reads the export. The period is not applied here; the
// engine filters transactional records itself.
func (f *File) LoadSnapshot(ctx context.Context, _ entity.TimeRange) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}
