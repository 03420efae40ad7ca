package app

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/apiclient"
	"aidex/internal/infra/hashutil"
	"aidex/internal/infra/images"
	"aidex/internal/infra/telemetry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	healthUpstream = "upstream"
	requestTimeout = 30 * time.Second
)

// HTTPOptions collects the services behind the JSON API.
type HTTPOptions struct {
	Config    domain.Config
	Listing   *ListingService
	Details   *DetailService
	Bookmarks *BookmarkService
	Auth      *AuthService
	Images    *images.Resolver
	Health    *telemetry.HealthTracker
	Logger    *zap.Logger
}

type apiHandler struct {
	cfg       domain.Config
	listing   *ListingService
	details   *DetailService
	bookmarks *BookmarkService
	auth      *AuthService
	images    *images.Resolver
	health    *telemetry.HealthTracker
	logger    *zap.Logger
}

// NewHTTPHandler builds the JSON API router.
func NewHTTPHandler(opts HTTPOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &apiHandler{
		cfg:       opts.Config,
		listing:   opts.Listing,
		details:   opts.Details,
		bookmarks: opts.Bookmarks,
		auth:      opts.Auth,
		images:    opts.Images,
		health:    opts.Health,
		logger:    logger.Named("http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(h.requestContext)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/tabs", h.handleTabs)
		r.Get("/tools", h.handleListTools)
		r.Get("/tools/{id}", h.handleGetTool)
		r.Get("/images", h.handleImages)
		r.Get("/bookmarks", h.handleListBookmarks)
		r.Put("/bookmarks/{id}", h.handleAddBookmark)
		r.Delete("/bookmarks/{id}", h.handleRemoveBookmark)
		r.Post("/bookmarks/{id}/toggle", h.handleToggleBookmark)
	})
	r.Get("/oauth/callback", h.handleOAuthCallback)
	r.Handle("/healthz", telemetry.ObservabilityHandler(telemetry.HTTPServerOptions{
		EnableHealthz: true,
		Health:        opts.Health,
	}))
	return r
}

// requestContext attaches request and trace IDs from the inbound headers and
// logs each request once it completes.
func (h *apiHandler) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, meta := telemetry.ExtractRequest(r.Context(), r.Header)
		w.Header().Set(telemetry.RequestIDHeader, meta.RequestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		fields := append(telemetry.RequestFields(meta),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			telemetry.DurationField(time.Since(start)),
		)
		h.logger.Debug("request served", fields...)
	})
}

func (h *apiHandler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CurrentVersion())
}

type tabResponse struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func (h *apiHandler) handleTabs(w http.ResponseWriter, _ *http.Request) {
	tabs := apiclient.Tabs()
	out := make([]tabResponse, 0, len(tabs))
	for _, slug := range tabs {
		out = append(out, tabResponse{Slug: slug, Label: apiclient.TabLabel(slug)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *apiHandler) handleListTools(w http.ResponseWriter, r *http.Request) {
	req, err := h.listRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.listing.List(r.Context(), req)
	h.recordUpstream(err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCacheable(w, r, "tool_list", view)
}

func (h *apiHandler) listRequest(r *http.Request) (ListRequest, error) {
	query := r.URL.Query()
	tab := query.Get("tab")
	if tab == "" {
		tab = h.cfg.Listing.DefaultTab
	}
	sortType, err := domain.ParseSortType(query.Get("sort"))
	if err != nil {
		return ListRequest{}, err
	}
	if query.Get("sort") == "" && h.cfg.Listing.DefaultSort != "" {
		sortType = h.cfg.Listing.DefaultSort
	}
	price, err := domain.ParsePriceFilter(query.Get("price"))
	if err != nil {
		return ListRequest{}, err
	}
	featured := 0
	if raw := query.Get("featured"); raw != "" {
		featured, err = strconv.Atoi(raw)
		if err != nil || featured < 0 {
			return ListRequest{}, domain.E(domain.CodeInvalidArgument, "list tools", "featured must be a non-negative integer", domain.ErrInvalidArgument)
		}
	}
	return ListRequest{
		Tab:           tab,
		Sort:          sortType,
		Keywords:      keywordParams(query["keyword"], query.Get("keywords")),
		Price:         price,
		Query:         query.Get("q"),
		FeaturedCount: featured,
	}, nil
}

// keywordParams merges repeated ?keyword= values with a comma separated
// ?keywords= list.
func keywordParams(repeated []string, joined string) []string {
	keywords := append([]string(nil), repeated...)
	if joined != "" {
		keywords = append(keywords, strings.Split(joined, ",")...)
	}
	return keywords
}

func (h *apiHandler) handleGetTool(w http.ResponseWriter, r *http.Request) {
	detail, err := h.details.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCacheable(w, r, "tool_detail", detail)
}

func (h *apiHandler) handleImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	writeJSON(w, http.StatusOK, h.images.Resolve(query.Get("name"), query.Get("category")))
}

func (h *apiHandler) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

type bookmarkState struct {
	ToolID     string `json:"toolId"`
	Bookmarked bool   `json:"bookmarked"`
}

func (h *apiHandler) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.bookmarks.Add(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarkState{ToolID: id, Bookmarked: true})
}

func (h *apiHandler) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.bookmarks.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarkState{ToolID: id, Bookmarked: false})
}

func (h *apiHandler) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bookmarked, err := h.bookmarks.Toggle(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarkState{ToolID: id, Bookmarked: bookmarked})
}

func (h *apiHandler) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	token, err := apiclient.TokenFromCallback(r.URL.String())
	if err == nil {
		err = h.auth.CompleteLogin(token)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Signed in. You can close this window.\n"))
}

// recordUpstream feeds list fetch outcomes into the health report. Caller
// mistakes say nothing about the upstream and are skipped.
func (h *apiHandler) recordUpstream(err error) {
	if err != nil && !errors.Is(err, domain.ErrNetwork) && !errors.Is(err, domain.ErrDataShape) {
		return
	}
	h.health.Record(healthUpstream, err)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (h *apiHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, ok := domain.CodeFrom(err)
	if !ok {
		code = domain.CodeInternal
	}
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		telemetry.LoggerWithRequest(r.Context(), h.logger).Warn("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Code:      string(code),
		Retryable: domain.IsRetryable(err),
	})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodeNetwork, domain.CodeDataShape:
		return http.StatusBadGateway
	case domain.CodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeCacheable answers with 304 when the client already holds the same
// representation.
func (h *apiHandler) writeCacheable(w http.ResponseWriter, r *http.Request, label string, v any) {
	etag := hashutil.ValueETag(h.logger, label, v)
	if etag != "" {
		w.Header().Set("ETag", etag)
		if hashutil.Matches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
