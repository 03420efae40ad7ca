package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueETag returns a quoted ETag of v's JSON encoding, or "" when v cannot be
// encoded.
func ValueETag(logger *zap.Logger, label string, v any) string {
	return hashWithLogger(logger, label, func() (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		sum := sha256.Sum256(data)
		return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
	})
}

// Matches reports whether an If-None-Match header value names etag.
func Matches(ifNoneMatch, etag string) bool {
	if etag == "" || ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func hashWithLogger(logger *zap.Logger, label string, fn func() (string, error)) string {
	etag, err := fn()
	if err != nil {
		if logger != nil {
			logger.Warn(fmt.Sprintf("%s hash failed", label), zap.Error(err))
		}
		return ""
	}
	return etag
}
