package images

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

func TestResolver_KnownServiceAndCategory(t *testing.T) {
	r := NewResolver("https://cdn.example.com/assets/", nil, zap.NewNop(), nil)

	got := r.Resolve("ChatGPT", "Chatbot")
	want := domain.ImageMapping{
		Logo:          "https://cdn.example.com/assets/chatbot/logo/chatgpt.png",
		ServiceImage:  "https://cdn.example.com/assets/chatbot/service/chatgpt.png",
		PriceImage:    "https://cdn.example.com/assets/chatbot/price/chatgpt.png",
		SearchbarLogo: "https://cdn.example.com/assets/chatbot/searchbar/chatgpt.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_UnknownCategoryFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	metrics := &countingMetrics{}
	r := NewResolver("/images", nil, zap.New(core), metrics)

	got := r.Resolve("UnknownTool123", "unknown-category")

	assert.Equal(t, r.Default(), got)
	assert.Equal(t, "/images/default.png", got.Logo)
	assert.Equal(t, got.Logo, got.ServiceImage)
	assert.Equal(t, got.Logo, got.PriceImage)
	assert.Equal(t, got.Logo, got.SearchbarLogo)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, telemetry.EventUnmappedAsset, entry.ContextMap()[telemetry.FieldEvent])
	assert.Equal(t, 1, metrics.unmapped[domain.AssetCategory])
}

func TestResolver_UnknownServiceDerivesFileName(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	metrics := &countingMetrics{}
	r := NewResolver("/images", nil, zap.New(core), metrics)

	got := r.Resolve("My New: Tool?", "IMAGE")

	assert.Equal(t, "/images/image/logo/My_New__Tool_.png", got.Logo)
	assert.Equal(t, "/images/image/searchbar/My_New__Tool_.png", got.SearchbarLogo)
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 1, metrics.unmapped[domain.AssetService])
}

func TestResolver_Overrides(t *testing.T) {
	r := NewResolver("", map[string]string{"Midjourney": "mj_v6.png", " ": "skip.png"}, nil, nil)

	got := r.Resolve("Midjourney", "image")
	assert.Equal(t, "image/logo/mj_v6.png", got.Logo)
	assert.Equal(t, "default.png", r.Default().Logo)
}

func TestResolver_NeverPanicsOnEmptyInput(t *testing.T) {
	r := NewResolver("/images", nil, nil, nil)

	assert.NotPanics(t, func() {
		got := r.Resolve("", "")
		assert.Equal(t, r.Default(), got)
	})
	assert.Equal(t, "/images/video/logo/default.png", r.Resolve("  ", "video").Logo)
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Gamma":           "Gamma.png",
		"Runway Gen 3":    "Runway_Gen_3.png",
		`a/b\c|d`:         "a_b_c_d.png",
		"노션\tAI":          "노션_AI.png",
		"":                "default.png",
		"  trimmed name ": "trimmed_name.png",
	}
	for in, want := range cases {
		assert.Equal(t, want, FileName(in), in)
	}
}

type countingMetrics struct {
	telemetry.NoopMetrics
	unmapped map[domain.AssetKind]int
}

func (m *countingMetrics) ObserveUnmappedAsset(kind domain.AssetKind) {
	if m.unmapped == nil {
		m.unmapped = make(map[domain.AssetKind]int)
	}
	m.unmapped[kind]++
}

func TestResolver_OverrideKeysAreCaseInsensitive(t *testing.T) {
	r := NewResolver("/images", map[string]string{"midjourney": "mj_v7.png"}, nil, nil)

	assert.Equal(t, "/images/image/logo/mj_v7.png", r.Resolve("Midjourney", "image").Logo)
	assert.Equal(t, "/images/chatbot/logo/chatgpt.png", r.Resolve("chatgpt", "chatbot").Logo)
}

func TestResolver_Reconfigure(t *testing.T) {
	r := NewResolver("/images", nil, nil, nil)
	require.Equal(t, "/images/chatbot/logo/chatgpt.png", r.Resolve("ChatGPT", "chatbot").Logo)

	r.Reconfigure("https://cdn.example.com/", map[string]string{"chatgpt": "gpt5.png"})
	assert.Equal(t, "https://cdn.example.com/chatbot/logo/gpt5.png", r.Resolve("ChatGPT", "chatbot").Logo)
	assert.Equal(t, "https://cdn.example.com/default.png", r.Default().Logo)
}
