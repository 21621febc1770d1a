// Package store is the persistence layer. Each store wraps a flat table and
// exposes get / upsert-by-filter / delete-by-filter operations; cross-request
// consistency comes from conditional single-statement writes, not locks.
package store

import "errors"

var ErrNotFound = errors.New("record not found")
