package interp

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

var (
	// globalCache stores compiled templates keyed by source and options hash.
	globalCache sync.Map

	// inflight deduplicates concurrent compilations of the same key.
	inflight singleflight.Group
)

// optionsKey holds the options that affect compilation and can be hashed.
type optionsKey struct {
	Locale          string
	Timezone        string
	NullReplacement string
	FailIfMissing   bool
}

// cacheable reports whether templates compiled with c may be shared.
// Functions and custom collaborators have no stable identity to hash.
func (c config) cacheable() bool {
	return c.enum == nil && c.units == nil && c.facility == nil
}

func (c config) key() optionsKey {
	return optionsKey{
		Locale:          c.locale,
		Timezone:        c.timezone,
		NullReplacement: c.nullReplacement,
		FailIfMissing:   c.failIfMissing,
	}
}

// hashOptions encodes options using gob and hashes with xxh3.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	_ = gob.NewEncoder(&buf).Encode(opts)

	return xxh3.Hash(buf.Bytes())
}

// CompileCached is like [Compile] but returns a shared compiled template
// when the same template was compiled before with equivalent options.
// Concurrent compilations of the same template run once.
//
// Templates compiled with [WithEnumFormatter], [WithUnits] or
// [WithFacility] are never cached.
func CompileCached(ctx context.Context, template string, opts ...Option) (*Template, error) {
	cfg := makeConfig(opts...)

	if !cfg.cacheable() {
		cfg.logger.TraceContext(ctx, "cache bypass",
			slog.Bool("enum", cfg.enum != nil),
			slog.Bool("units", cfg.units != nil),
			slog.Bool("facility", cfg.facility != nil))

		return compile(ctx, template, cfg)
	}

	sourceHash := xxh3.HashString(template)
	optsHash := hashOptions(cfg.key())
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	cached, hit := globalCache.Load(key)

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", hit))

	if !hit {
		var err error

		cached, err, _ = inflight.Do(key, func() (any, error) {
			t, err := compile(ctx, template, cfg)
			if err != nil {
				return nil, err
			}

			globalCache.Store(key, t)

			return t, nil
		})
		if err != nil {
			return nil, err
		}
	}

	t, ok := cached.(*Template)
	if !ok || t.source != template {
		// hash collision
		return compile(ctx, template, cfg)
	}

	// share the compiled state but log through the caller's logger
	shared := *t
	shared.logger = cfg.logger

	return &shared, nil
}

// ClearCache removes all cached templates.
func ClearCache() {
	globalCache.Clear()
}
