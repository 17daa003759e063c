package iiif

import (
	"context"
	"net/http"

	"github.com/golang/groupcache"
)

// ContextKey scopes the request-context values this package installs.
type ContextKey string

// WithConfig hands the image catalog configuration to every handler.
func WithConfig(h http.Handler, config *Config) http.Handler {
	return withValues(h, map[ContextKey]interface{}{
		"config": config,
	})
}

// WithGroupCaches hands the named document caches to every handler.
func WithGroupCaches(h http.Handler, groups map[string]*groupcache.Group) http.Handler {
	values := make(map[ContextKey]interface{}, len(groups))
	for name, group := range groups {
		values[ContextKey(name)] = group
	}
	return withValues(h, values)
}

func withValues(h http.Handler, values map[ContextKey]interface{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		for k, v := range values {
			ctx = context.WithValue(ctx, k, v)
		}
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}
