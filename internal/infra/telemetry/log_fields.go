package telemetry

import (
	"time"

	"go.uber.org/zap"

	"aidex/internal/domain"
)

const (
	FieldEvent      = "event"
	FieldCacheKey   = "cache_key"
	FieldTab        = "tab"
	FieldSort       = "sort"
	FieldToolID     = "tool_id"
	FieldDurationMs = "duration_ms"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
	FieldCount      = "count"
)

const (
	EventCacheHit       = "cache_hit"
	EventCacheMiss      = "cache_miss"
	EventFetchSuccess   = "fetch_success"
	EventFetchFailure   = "fetch_failure"
	EventStaleResult    = "stale_result"
	EventUnmappedAsset  = "unmapped_asset"
	EventBookmarkAdd    = "bookmark_add"
	EventBookmarkRemove = "bookmark_remove"
	EventLogin          = "login"
	EventLogout         = "logout"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func CacheKeyField(key domain.CacheKey) zap.Field {
	return zap.String(FieldCacheKey, key.String())
}

func TabField(tab string) zap.Field {
	return zap.String(FieldTab, tab)
}

func SortField(sort domain.SortType) zap.Field {
	return zap.String(FieldSort, string(sort))
}

func ToolIDField(id string) zap.Field {
	return zap.String(FieldToolID, id)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}

func CountField(n int) zap.Field {
	return zap.Int(FieldCount, n)
}
