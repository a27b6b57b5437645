package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithBackoff(time.Millisecond),
	}
	return NewClient(append(base, opts...)...)
}

func TestRetriesServerErrorsThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"skills":[{"name":"Go","score":5}]}`))
	}))
	defer srv.Close()

	skills, err := newTestClient(srv).TopSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Skill{{Name: "Go", Score: 5}}, skills)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, WithMaxAttempts(2)).Profile(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid input","message":"Invalid input provided"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Health(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid input", apiErr.Code)
	assert.Equal(t, "Invalid input provided", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProjectsSendsTrimmedSkill(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"count":1,"projects":[{"id":1,"title":"Tracker","skills":["Go"]}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	list, err := c.Projects(context.Background(), "  go ")
	require.NoError(t, err)
	assert.Equal(t, "skill=go", gotQuery)
	assert.Equal(t, 1, list.Count)

	_, err = c.Projects(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery)
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "data eng", r.URL.Query().Get("q"))
		w.Write([]byte(`{"projects":[],"skills":[],"work":[{"company":"Acme","role":"Data Engineer"}]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv).Search(context.Background(), "data eng")
	require.NoError(t, err)
	require.Len(t, res.Work, 1)
	assert.Equal(t, "Acme", res.Work[0].Company)
}

func TestInvalidJSONIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Profile(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv, WithBackoff(time.Second), WithMaxAttempts(5)).Profile(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
