package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"aidex/internal/domain"
)

func TestValueETag(t *testing.T) {
	tools := []domain.Tool{{ID: "1", Name: "ChatGPT"}, {ID: "2", Name: "Claude"}}

	etag := ValueETag(nil, "tool_list", tools)
	assert.Len(t, etag, 34)
	assert.Equal(t, etag, ValueETag(nil, "tool_list", domain.CloneTools(tools)))

	tools[1].Name = "Claude 3"
	assert.NotEqual(t, etag, ValueETag(nil, "tool_list", tools))
}

func TestValueETag_LogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	etag := ValueETag(zap.New(core), "view", map[string]any{"bad": make(chan int)})
	assert.Empty(t, etag)
	assert.Equal(t, 1, logs.FilterMessage("view hash failed").Len())
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(`"abc"`, `"abc"`))
	assert.True(t, Matches(`"x", W/"abc"`, `"abc"`))
	assert.True(t, Matches(`*`, `"abc"`))
	assert.False(t, Matches(`"abd"`, `"abc"`))
	assert.False(t, Matches("", `"abc"`))
	assert.False(t, Matches(`"abc"`, ""))
}
