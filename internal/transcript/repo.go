package transcript

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repo is a Postgres-backed transcript store shared across bot
// restarts. Entries older than MaxAge are treated as misses.
type Repo struct {
	DB     *sql.DB
	MaxAge time.Duration
}

func NewRepo(db *sql.DB, maxAge time.Duration) *Repo {
	return &Repo{DB: db, MaxAge: maxAge}
}

// EnsureSchema creates the cache table when it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists transcripts (
  video_id   text primary key,
  transcript text not null,
  created_at timestamptz not null default now()
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *Repo) Get(ctx context.Context, videoID string) (string, bool, error) {
	const q = `select transcript, created_at from transcripts where video_id = $1`

	var (
		text string
		ts   time.Time
	)
	err := r.DB.QueryRowContext(ctx, q, videoID).Scan(&text, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if r.MaxAge > 0 && time.Since(ts) > r.MaxAge {
		return "", false, nil
	}
	return text, true, nil
}

func (r *Repo) Set(ctx context.Context, videoID, text string) error {
	const q = `
insert into transcripts (video_id, transcript, created_at)
values ($1, $2, now())
on conflict (video_id) do update
set transcript = excluded.transcript,
    created_at = excluded.created_at`
	_, err := r.DB.ExecContext(ctx, q, videoID, text)
	return err
}

// PurgeOlderThan deletes stale cache rows so the table does not grow
// without bound.
func (r *Repo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from transcripts where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
