package router

import (
	"context"
	"net/http"

	"github.com/questforge/backend/pkg/xcontext"
)

// HandlerFunc is a typed endpoint handler. The request is bound from the query
// string (GET) or the JSON body (POST) before the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It can derive a new context
// (e.g. to attach the authenticated user); returning an error aborts the
// request with an error envelope.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of the outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router. The given context carries the configs, logger,
// database handle and token engine shared by every request.
func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		baseCtx: ctx,
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
	}

	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerEndpoint(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerEndpoint(r, http.MethodPost, pattern, handler)
}

func registerEndpoint[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(r.baseCtx, req)
		ctx = withResultHolder(ctx)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var request Request
		if err := bindRequest(req, method, &request); err != nil {
			setError(ctx, err)
			writeErrorResponse(ctx, w, err)
			return
		}

		var err error
		for _, before := range befores {
			if ctx, err = before(ctx); err != nil {
				setError(ctx, err)
				writeErrorResponse(ctx, w, err)
				return
			}
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			setError(ctx, err)
			writeErrorResponse(ctx, w, err)
			return
		}

		setResponse(ctx, resp)
		for _, after := range afters {
			if ctx, err = after(ctx); err != nil {
				setError(ctx, err)
				writeErrorResponse(ctx, w, err)
				return
			}
		}

		writeResponse(ctx, w, resp)
	})
}
