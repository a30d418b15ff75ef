package shared

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"studiodesk/shared/cache"
	"studiodesk/shared/dto"
)

const cacheKeySeparator = ":"

// ParseOptionalInt parses a query value that may be absent. A present but
// malformed value is an error.
func ParseOptionalInt(value, name string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}

	return &parsed, nil
}

// NullIfBlank maps "", "   " to nil.
func NullIfBlank(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	return &value
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix with parts.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// InvalidateCaches drops keys without blocking the caller. Failures are only
// logged; the entries still expire with their TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, keys ...string) {
	ctx = context.WithoutCancel(ctx)

	go func() {
		if err := redisCache.Delete(ctx, keys...); err != nil {
			log.Error().Err(err).Strs("keys", keys).Msg("failed to invalidate caches")
		}
	}()
}
