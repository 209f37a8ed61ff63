// Package cache is the named response bucket backing the offline shell.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/carson-networks/pocket-planner/internal/interceptor"
)

// ErrFetchFailed is returned by AddAll when a manifest URL could not be fetched.
var ErrFetchFailed = errors.New("cache: fetch failed")

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	cache_name  TEXT    NOT NULL,
	request_key TEXT    NOT NULL,
	entry       BLOB    NOT NULL,
	stored_at   INTEGER NOT NULL,
	PRIMARY KEY (cache_name, request_key)
)`

// Bucket is one named cache inside a SQLite database. Several buckets may
// share a database.
type Bucket struct {
	db   *sql.DB
	name string
}

var _ interceptor.Bucket = (*Bucket)(nil)

// Open creates the backing table when missing and returns the bucket called name.
func Open(ctx context.Context, db *sql.DB, name string) (*Bucket, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &Bucket{db: db, name: name}, nil
}

func (b *Bucket) Name() string {
	return b.name
}

// Match returns the stored response for key, or nil when there is none.
func (b *Bucket) Match(ctx context.Context, key string) (*interceptor.Response, error) {
	var entry []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT entry FROM cache_entries WHERE cache_name = ? AND request_key = ?`,
		b.name, key,
	).Scan(&entry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", key, err)
	}

	var resp interceptor.Response
	if err = msgpack.Unmarshal(entry, &resp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &resp, nil
}

// Put stores resp under key, replacing any previous entry.
func (b *Bucket) Put(ctx context.Context, key string, resp *interceptor.Response) error {
	return b.put(ctx, b.db, key, resp)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (b *Bucket) put(ctx context.Context, exec execer, key string, resp *interceptor.Response) error {
	entry, err := msgpack.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	_, err = exec.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_name, request_key, entry, stored_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (cache_name, request_key) DO UPDATE SET entry = excluded.entry, stored_at = excluded.stored_at`,
		b.name, key, entry, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE cache_name = ? AND request_key = ?`, b.name, key)
	return err
}

// Keys lists the stored request keys, least recently written first.
func (b *Bucket) Keys(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT request_key FROM cache_entries WHERE cache_name = ? ORDER BY stored_at, rowid`, b.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (b *Bucket) Clear(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_name = ?`, b.name)
	return err
}

// Fetcher retrieves one manifest URL.
type Fetcher func(ctx context.Context, url string) (*interceptor.Response, error)

// HTTPFetcher fetches with client.
func HTTPFetcher(client *http.Client) Fetcher {
	return func(ctx context.Context, url string) (*interceptor.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		header := resp.Header.Clone()
		header.Del("Content-Length")
		return &interceptor.Response{Status: resp.StatusCode, Header: header, Body: body}, nil
	}
}

// AddAll fetches every url and stores all of them, or none when any fetch
// fails or is not OK.
func (b *Bucket) AddAll(ctx context.Context, fetch Fetcher, urls []string) error {
	fetched := make([]*interceptor.Response, len(urls))
	for i, url := range urls {
		resp, err := fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, err)
		}
		if !resp.OK() {
			return fmt.Errorf("%w: %s: status %d", ErrFetchFailed, url, resp.Status)
		}
		fetched[i] = resp
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i, url := range urls {
		if err = b.put(ctx, tx, url, fetched[i]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Install precaches the static asset manifest.
func (b *Bucket) Install(ctx context.Context, fetch Fetcher, manifest []string) error {
	return b.AddAll(ctx, fetch, manifest)
}

// Activate drops everything in the bucket, including network write-backs from
// a previous run, and precaches the manifest again. When the manifest cannot
// be fetched the bucket is left empty.
func (b *Bucket) Activate(ctx context.Context, fetch Fetcher, manifest []string) error {
	if err := b.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", b.name, err)
	}
	return b.AddAll(ctx, fetch, manifest)
}
