// Package repositories implements SQLite persistence for client state.
//
// The watched list is one JSON array under one key.
// [KVStore] provides that model over a kv(key, value, updated_at) table created by the embedded migrations,
// and [WatchedRepository] stores the watched list under [WatchedKey].
//
// Reads never fail the caller: a missing or malformed value yields an empty list and a logged warning.
// Writes replace the whole value, so there is no partial-write or migration handling.
package repositories
