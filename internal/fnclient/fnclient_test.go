package fnclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_SendsKeyAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "svc", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer svc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@x.test"}`, string(raw))
		_, _ = w.Write([]byte(`{"exists":true}`))
	}))
	defer srv.Close()

	raw, err := Post(context.Background(), srv.Client(), srv.URL, "svc", map[string]string{"email": "a@x.test"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"exists":true}`, string(raw))
}

func TestPost_NoBodyNoKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("apikey"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		assert.Empty(t, raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw, err := Post(context.Background(), nil, srv.URL, "", nil)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestPost_StatusErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusBadRequest, `{"error":"invalid email"}`, "invalid email"},
		{"message field", http.StatusInternalServerError, `{"message":"procedure failed"}`, "procedure failed"},
		{"plain body", http.StatusBadGateway, `upstream down`, "Bad Gateway"},
		{"redirect", http.StatusSeeOther, ``, "See Other"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status == http.StatusSeeOther {
					// not followed: the client below refuses redirects
					w.Header().Set("Location", "/dashboard/login")
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			hc := srv.Client()
			hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

			_, err := Post(context.Background(), hc, srv.URL, "svc", nil)
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.status, se.Status)
			assert.Equal(t, tc.want, se.Message)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestPost_CapsReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", MaxReply+10)))
	}))
	defer srv.Close()

	raw, err := Post(context.Background(), srv.Client(), srv.URL, "", nil)
	require.NoError(t, err)
	assert.Len(t, raw, MaxReply)
}
