package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/liberate/pkg/observability"
)

// logHooks reports step timings and cache activity at debug level.
type logHooks struct {
	observability.NoopLiberateHooks
	logger *log.Logger
}

func (h *logHooks) OnShrinkStart(_ context.Context, directives int) {
	h.logger.Debug("running ProGuard", "directives", directives)
}

func (h *logHooks) OnShrinkComplete(_ context.Context, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("ProGuard failed", "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("ProGuard finished", "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnExtractComplete(_ context.Context, files int, bytes int64, d time.Duration, err error) {
	h.logger.Debug("extracted staging jar", "files", files, "bytes", bytes, "duration", d.Round(time.Millisecond), "ok", err == nil)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.LiberateHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
