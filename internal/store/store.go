// Package store persists generated plans so they can be fetched by ID,
// polled while a worker generates them, and downloaded.
package store

import (
	"context"

	"github.com/briangreenhill/athletiq/internal/plan"
)

var (
	_ plan.Store = (*FileStore)(nil)
	_ plan.Store = (*Postgres)(nil)
)

// Open returns a Postgres store when databaseURL is set and a FileStore in
// dir otherwise. The returned close function releases the connection pool.
func Open(ctx context.Context, databaseURL, dir string) (plan.Store, func(), error) {
	if databaseURL != "" {
		pg, err := NewPostgres(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	fs, err := NewFileStore(dir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}
