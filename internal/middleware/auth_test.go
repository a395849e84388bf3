package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/testutil"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthVerifier_BearerToken(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user1", model.AccessToken{
		ID:   "user1",
		Name: "user1",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	gotCtx, err := NewAuthVerifier().Middleware()(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(gotCtx))
}

func TestAuthVerifier_CookieToken(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user2", model.AccessToken{
		ID:   "user2",
		Name: "user2",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
	req.AddCookie(&http.Cookie{
		Name:  xcontext.Configs(ctx).Auth.AccessToken.Name,
		Value: token,
	})

	gotCtx, err := NewAuthVerifier().Middleware()(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user2", xcontext.RequestUserID(gotCtx))
}

func TestAuthVerifier_Rejects(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name:  "no credentials",
			setup: func(r *http.Request) {},
		},
		{
			name: "malformed token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-jwt")
			},
		},
		{
			name: "wrong scheme",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
			tt.setup(req)

			_, err := NewAuthVerifier().Middleware()(xcontext.WithHTTPRequest(ctx, req))
			var errx errorx.Error
			require.ErrorAs(t, err, &errx)
			require.Equal(t, errorx.Unauthenticated, errx.Code)
		})
	}
}
