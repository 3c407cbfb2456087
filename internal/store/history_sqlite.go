package store

import (
        "context"
        "database/sql"
        "errors"
        "path/filepath"
        "strings"
        "time"

        "quotemark-cli/internal/model"

        _ "modernc.org/sqlite"
)

const historyFileName = "history.sqlite"

func (s Store) historyPath() string {
        return filepath.Join(s.localDir(), historyFileName)
}

func (s Store) openHistory(ctx context.Context) (*sql.DB, error) {
        if err := s.Ensure(); err != nil {
                return nil, err
        }
        // modernc.org/sqlite driver name is "sqlite".
        db, err := sql.Open("sqlite", s.historyPath())
        if err != nil {
                return nil, err
        }
        // CLI, TUI and web can all write history at once.
        pragmas := []string{
                "PRAGMA journal_mode=WAL;",
                "PRAGMA synchronous=NORMAL;",
                "PRAGMA busy_timeout=5000;",
        }
        for _, p := range pragmas {
                if _, err := db.ExecContext(ctx, p); err != nil {
                        _ = db.Close()
                        return nil, err
                }
        }
        if err := migrateHistory(ctx, db); err != nil {
                _ = db.Close()
                return nil, err
        }
        return db, nil
}

func migrateHistory(ctx context.Context, db *sql.DB) error {
        stmts := []string{
                `CREATE TABLE IF NOT EXISTS label_events (
                        id INTEGER PRIMARY KEY AUTOINCREMENT,
                        posting TEXT NOT NULL,
                        field TEXT NOT NULL,
                        fact TEXT NOT NULL,
                        quote TEXT NOT NULL,
                        source TEXT NOT NULL,
                        actor TEXT NOT NULL DEFAULT '',
                        created_at_unixms INTEGER NOT NULL
                );`,
                `CREATE INDEX IF NOT EXISTS idx_label_events_posting ON label_events(posting, id);`,
        }
        for _, st := range stmts {
                if _, err := db.ExecContext(ctx, st); err != nil {
                        return err
                }
        }
        return nil
}

// AppendLabelEvent records a saved fact. ID and CreatedAt are filled in when
// zero and returned.
func (s Store) AppendLabelEvent(ctx context.Context, ev model.LabelEvent) (model.LabelEvent, error) {
        if err := ValidatePostingName(ev.Posting); err != nil {
                return ev, err
        }
        if strings.TrimSpace(string(ev.Field)) == "" {
                return ev, errors.New("history: missing field")
        }
        if ev.CreatedAt.IsZero() {
                ev.CreatedAt = time.Now().UTC()
        }
        db, err := s.openHistory(ctx)
        if err != nil {
                return ev, err
        }
        defer db.Close()

        res, err := db.ExecContext(ctx,
                `INSERT INTO label_events(posting, field, fact, quote, source, actor, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
                ev.Posting, string(ev.Field), ev.Fact, ev.Quote, string(ev.Source), ev.Actor, ev.CreatedAt.UnixMilli(),
        )
        if err != nil {
                return ev, err
        }
        if id, err := res.LastInsertId(); err == nil {
                ev.ID = id
        }
        return ev, nil
}

// ReadLabelEvents returns events oldest first. An empty posting reads all
// postings; limit <= 0 means no limit (otherwise the newest limit events).
func (s Store) ReadLabelEvents(ctx context.Context, posting string, limit int) ([]model.LabelEvent, error) {
        db, err := s.openHistory(ctx)
        if err != nil {
                return nil, err
        }
        defer db.Close()

        q := `SELECT id, posting, field, fact, quote, source, actor, created_at_unixms FROM label_events`
        var args []any
        if strings.TrimSpace(posting) != "" {
                q += ` WHERE posting = ?`
                args = append(args, strings.TrimSpace(posting))
        }
        q += ` ORDER BY id DESC`
        if limit > 0 {
                q += ` LIMIT ?`
                args = append(args, limit)
        }

        rows, err := db.QueryContext(ctx, q, args...)
        if err != nil {
                return nil, err
        }
        defer rows.Close()

        out := []model.LabelEvent{}
        for rows.Next() {
                var ev model.LabelEvent
                var field, source string
                var ms int64
                if err := rows.Scan(&ev.ID, &ev.Posting, &field, &ev.Fact, &ev.Quote, &source, &ev.Actor, &ms); err != nil {
                        return nil, err
                }
                ev.Field = model.FieldName(field)
                ev.Source = model.LabelSource(source)
                ev.CreatedAt = time.UnixMilli(ms).UTC()
                out = append(out, ev)
        }
        if err := rows.Err(); err != nil {
                return nil, err
        }
        for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
                out[i], out[j] = out[j], out[i]
        }
        return out, nil
}
