package router

import "context"

type resultHolderKey struct{}

// resultHolder makes the handler outcome visible to closers, which run with
// the same context the handler started with.
type resultHolder struct {
	err      error
	response any
}

func withResultHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, resultHolderKey{}, &resultHolder{})
}

func setError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(resultHolderKey{}).(*resultHolder); ok {
		holder.err = err
	}
}

func setResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(resultHolderKey{}).(*resultHolder); ok {
		holder.response = resp
	}
}

// Error returns the error produced by the current request, if any.
func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(resultHolderKey{}).(*resultHolder); ok {
		return holder.err
	}

	return nil
}

// Response returns the response object produced by the current request.
func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(resultHolderKey{}).(*resultHolder); ok {
		return holder.response
	}

	return nil
}
