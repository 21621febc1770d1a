package services

import "errors"

// ErrUpstreamFailure marks a non-success response or transport failure from
// an external provider (catalog, identity, payment). Handlers surface it as
// a 502.
var ErrUpstreamFailure = errors.New("upstream provider failure")
