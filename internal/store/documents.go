package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jekabolt/shopdesk-reports/internal/dependency"
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/jekabolt/shopdesk-reports/internal/snapshot"
	"golang.org/x/sync/errgroup"
)

const importBatchSize = 500

var documentColumns = []string{"collection", "id", "body", "created_at"}

type documentStore struct {
	*MYSQLStore
}

// Documents returns an object implementing the documents interface
func (ms *MYSQLStore) Documents() dependency.Documents {
	return &documentStore{
		MYSQLStore: ms,
	}
}

type documentRow struct {
	ID   string `db:"id"`
	Body []byte `db:"body"`
}

type collectionCount struct {
	Collection string `db:"collection"`
	Count      int    `db:"n"`
}

// LoadSnapshot loads every collection concurrently. Transactional
// collections are narrowed to the period by their stored creation time;
// documents stored without one are always returned so the engine can probe
// them itself.
func (ms *MYSQLStore) LoadSnapshot(ctx context.Context, period entity.TimeRange) (*entity.Snapshot, error) {
	results := make([][]entity.Record, len(entity.Collections))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range entity.Collections {
		i, name := i, name
		g.Go(func() error {
			recs, err := ms.loadCollection(ctx, name, period)
			if err != nil {
				return fmt.Errorf("can't load %s: %w", name, err)
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &entity.Snapshot{}
	for i, name := range entity.Collections {
		s.SetCollection(name, results[i])
	}
	return s, nil
}

func (ms *MYSQLStore) loadCollection(ctx context.Context, name string, period entity.TimeRange) ([]entity.Record, error) {
	query, params := collectionQuery(name, period)
	rows, err := QueryListNamed[documentRow](ctx, ms.db, query, params)
	if err != nil {
		return nil, err
	}

	recs := make([]entity.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := snapshot.DecodeDocument(row.Body)
		if err != nil {
			slog.Default().WarnContext(ctx, "skipping unreadable document",
				slog.String("collection", name),
				slog.String("id", row.ID),
				slog.String("err", err.Error()),
			)
			continue
		}
		if !rec.Has("id") {
			rec["id"] = row.ID
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func collectionQuery(name string, period entity.TimeRange) (string, map[string]any) {
	params := map[string]any{"collection": name}
	conds := []string{"collection = :collection"}

	if entity.IsTransactional(name) && !period.IsZero() {
		var window []string
		if !period.From.IsZero() {
			window = append(window, "created_at >= :from")
			params["from"] = period.From.UTC()
		}
		if !period.To.IsZero() {
			window = append(window, "created_at <= :to")
			params["to"] = period.To.UTC()
		}
		conds = append(conds, "(created_at IS NULL OR ("+strings.Join(window, " AND ")+"))")
	}

	return `SELECT id, body FROM document WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY seq`, params
}

// ImportSnapshot upserts every document in one transaction. Documents
// without an id get a generated one, written back into their body.
func (ms *MYSQLStore) ImportSnapshot(ctx context.Context, s *entity.Snapshot) (int, error) {
	if s == nil {
		return 0, nil
	}

	written := 0
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		written = 0
		for _, name := range entity.Collections {
			rows, err := documentRows(name, s.Collection(name), ms.loc)
			if err != nil {
				return err
			}
			for start := 0; start < len(rows); start += importBatchSize {
				end := min(start+importBatchSize, len(rows))
				if err := BulkUpsert(ctx, rep.DB(), "document", documentColumns, []string{"body", "created_at"}, rows[start:end]); err != nil {
					return fmt.Errorf("can't import %s: %w", name, err)
				}
			}
			written += len(rows)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import snapshot: %w", err)
	}
	return written, nil
}

func documentRows(name string, recs []entity.Record, loc *time.Location) ([][]any, error) {
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		id := rec.String("id", "_id")
		if id == "" {
			id = uuid.NewString()
			rec["id"] = id
		}
		body, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("can't encode %s/%s: %w", name, id, err)
		}
		var created sql.NullTime
		if t, ok := rec.CreatedAtIn(loc); ok {
			created = sql.NullTime{Time: t.UTC().Truncate(time.Millisecond), Valid: true}
		}
		rows = append(rows, []any{name, id, body, created})
	}
	return rows, nil
}

// CountDocuments returns the number of stored documents per collection.
func (ms *MYSQLStore) CountDocuments(ctx context.Context) (map[string]int, error) {
	query := `SELECT collection, COUNT(*) AS n FROM document GROUP BY collection`
	counts, err := QueryListNamed[collectionCount](ctx, ms.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't count documents: %w", err)
	}
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Collection] = c.Count
	}
	return out, nil
}
