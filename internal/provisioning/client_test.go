package provisioning

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"transitcoop/internal/fnclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "svc", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer svc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"email":"a@x.test","status":"success","message":"User created","credentials":{"role":"driver","password":"pw"}},
				{"email":"b@x.test","status":"updated","message":"User updated"}
			],
			"summary": {"total":2,"created":1,"errors":0,"existing":1}
		}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "svc", srv.Client()).Invoke(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	require.NotNil(t, resp.Results[0].Credentials)
	assert.Equal(t, "pw", resp.Results[0].Credentials.Password)
	assert.Equal(t, 1, resp.Summary.Existing)
}

func TestClient_InvokeErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"error field": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"boom","results":[],"summary":{}}`))
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := NewClient(srv.URL, "", srv.Client()).Invoke(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestClient_InvokeStatusErrorKeepsEndpointMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "wrong", srv.Client()).Invoke(context.Background())
	require.Error(t, err)

	var se *fnclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "invoke provisioning: Unauthorized (status 401)", err.Error())
}

type stubInvoker struct {
	resp *Response
	err  error
}

func (s stubInvoker) Invoke(context.Context) (*Response, error) { return s.resp, s.err }

func TestRun(t *testing.T) {
	out, err := Run(context.Background(), stubInvoker{err: errors.New("network down")})
	assert.Error(t, err)
	assert.Equal(t, Failure(), out.Notification)
	assert.NotContains(t, out.Notification.Message, "network down")
	assert.Nil(t, out.Response)

	out, err = Run(context.Background(), stubInvoker{resp: &Response{
		Results: []Result{{Status: StatusUpdated}},
		Summary: Summary{Total: 1, Existing: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Counts.Updated)
	assert.Equal(t, ToneSuccess, out.Notification.Tone)
}
