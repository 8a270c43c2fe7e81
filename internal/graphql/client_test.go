package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	o := Options{Endpoint: srv.URL, Timeout: 2 * time.Second}
	for _, fn := range opts {
		fn(&o)
	}
	c, err := NewClient(o)
	require.NoError(t, err)
	return c
}

func TestDoPostsOperation(t *testing.T) {
	var (
		got     Request
		header  http.Header
		method  string
		decoded error
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		method = r.Method
		decoded = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data":{"contacts":[]}}`))
	}, func(o *Options) {
		o.Headers = map[string]string{"Authorization": "Bearer t"}
	})

	data, err := c.Do(context.Background(), Request{
		OperationName: "GetContacts",
		Query:         "query GetContacts { contacts { id } }",
		Variables:     map[string]any{"first": 10},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"contacts":[]}`, string(data))

	require.NoError(t, decoded)
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "GetContacts", got.OperationName)
	require.Equal(t, float64(10), got.Variables["first"])
	require.Equal(t, "application/json", header.Get("Content-Type"))
	require.Equal(t, "Bearer t", header.Get("Authorization"))
	_, err = uuid.Parse(header.Get(RequestIDHeader))
	require.NoError(t, err, "request id should be a uuid")
}

func TestDoFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{name: "graphql errors", status: 200, body: `{"errors":[{"message":"boom"}],"data":null}`, kind: KindGraphQL, message: "boom"},
		{name: "server error", status: 500, body: `oops`, kind: KindStatus, message: "http status 500"},
		{name: "malformed json", status: 200, body: `{"data":`, kind: KindDecode},
		{name: "no data", status: 200, body: `{"data":null}`, kind: KindDecode, message: "no data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Do(context.Background(), Request{OperationName: "GetContacts", Query: "{ contacts { id } }"})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrQueryFailed))
			var qe *QueryError
			require.True(t, errors.As(err, &qe))
			require.Equal(t, tt.kind, qe.Kind)
			require.Equal(t, "GetContacts", qe.Operation)
			if tt.message != "" {
				require.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Options{Endpoint: url})
	require.NoError(t, err)
	_, err = c.Do(context.Background(), Request{Query: "{ contacts { id } }"})
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	require.Equal(t, KindTransport, qe.Kind)
	require.ErrorIs(t, err, ErrQueryFailed)
}

func TestDoHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, func(o *Options) { o.Timeout = 50 * time.Millisecond })
	defer close(release)

	_, err := c.Do(context.Background(), Request{Query: "{ contacts { id } }"})
	require.ErrorIs(t, err, ErrQueryFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(Options{})
	require.Error(t, err)
}
