package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/logger"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func newTestRouter() *Router {
	ctx := xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
	return New(ctx)
}

func TestRouter_GETBindsQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Limit: req.Limit}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?name=alice&limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "alice", resp.Data.Name)
	require.Equal(t, 5, resp.Data.Limit)
}

func TestRouter_POSTBindsBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Limit: req.Limit}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"bob","limit":3}`)))

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bob", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Limit)
}

func TestRouter_InvalidBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader("not json")))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/denied", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/denied", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.PermissionDenied), resp.Code)
	require.Equal(t, "Permission denied", resp.Error)
}

func TestRouter_UnknownErrorIsMasked(t *testing.T) {
	r := newTestRouter()
	GET(r, "/boom", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.Unknown
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_BranchIsolatesMiddleware(t *testing.T) {
	r := newTestRouter()

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})

	GET(branch, "/private", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})
	GET(r, "/public", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: "public"}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	var resp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Zero(t, resp.Code)
}

func TestRouter_CloserSeesError(t *testing.T) {
	r := newTestRouter()

	var seen error
	r.AddCloser(func(ctx context.Context) {
		seen = Error(ctx)
	})

	GET(r, "/boom", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var errx errorx.Error
	require.ErrorAs(t, seen, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
