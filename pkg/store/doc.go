// Package store reads digest content from PostgreSQL.
//
// A Store wraps a pgx pool. Open acquires one connection as a Session for
// the duration of a digest run; the session answers the selector's job and
// letter queries and must be closed on every exit path. The Store itself
// keeps the dispatch log used by the once-per-day guard and runs activity
// and statistics queries for maintenance commands.
//
// Schema migrations are embedded (Migrations) and applied with goose.
package store
