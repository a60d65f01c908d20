// Package storage bootstraps the client's local persistence.
//
// InitDatabase opens the SQLite file and applies the embedded goose
// migrations; Open picks the metadata backend (sqlite, redis or memory)
// named in the configuration.
package storage

import "errors"

var ErrUnknownStorage = errors.New("unknown storage backend")
