package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/router"
	"github.com/questforge/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s", r.Method, r.URL.Path)
		if err := router.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			// The path is request-controlled and must never be the format string.
			xcontext.Logger(ctx).Infof("%s", info)
		}
	}
}
