package providers

import "errors"

// ErrCacheMiss is returned by CacheProvider.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")
