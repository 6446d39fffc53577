// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/jeranaias/finsight-tui/internal/stocks"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

// =============================================================================
// STOCKS TESTS
// =============================================================================

func TestFetchStocks_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/stocks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"symbol":"AAPL","company":"Apple Inc.","price":178.42,"change":2.15,"change_percent":"1.22","status":"success"},
			{"symbol":"GOOGL","company":"Alphabet Inc.","price":"141.25","change":"-1.83","change_percent":"-1.28","status":"ok"}
		]`)
	})

	records, err := client.FetchStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "178.42", records[0].Price)
	assert.Equal(t, stocks.StatusOK, records[0].Status)
	assert.Equal(t, "GOOGL", records[1].Symbol)
	assert.Equal(t, "-1.83", records[1].Change)
}

func TestFetchStocks_Any2xxIsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				io.WriteString(w, `[{"symbol":"AAPL","company":"Apple Inc.","price":"178.42","change":"2.15","change_percent":"1.22","status":"ok"}]`)
			})

			records, err := client.FetchStocks(context.Background())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "AAPL", records[0].Symbol)
		})
	}
}

func TestFetchStocks_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType ErrorType
	}{
		{"server error", http.StatusInternalServerError, `[]`, ErrTypeStatus},
		{"redirect without location", http.StatusMultipleChoices, `[]`, ErrTypeStatus},
		{"not found", http.StatusNotFound, `{"detail":"Not Found"}`, ErrTypeStatus},
		{"malformed body", http.StatusOK, `[{"symbol":`, ErrTypeInvalidResponse},
		{"object body", http.StatusOK, `{"stocks":[]}`, ErrTypeInvalidResponse},
		{"null body", http.StatusOK, `null`, ErrTypeInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			records, err := client.FetchStocks(context.Background())
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Equal(t, tc.wantType, Category(err))
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestFetchStocks_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil)
	_, err := client.FetchStocks(context.Background())

	require.Error(t, err)
	assert.Equal(t, ErrTypeConnection, Category(err))
}

func TestFetchStocks_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchStocks(ctx)
	assert.True(t, IsTimeout(err), "got %v", err)
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestSendChat_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Which stock should I buy today?", req.Message)

		io.WriteString(w, `{"response":"NVDA has momentum, but this is not financial advice."}`)
	})

	reply, err := client.SendChat(context.Background(), "Which stock should I buy today?")
	require.NoError(t, err)
	assert.Equal(t, "NVDA has momentum, but this is not financial advice.", reply)
}

func TestSendChat_EmptyResponseIsValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":""}`)
	})

	reply, err := client.SendChat(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestSendChat_Any2xxIsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				io.WriteString(w, `{"response":"Markets are steady."}`)
			})

			reply, err := client.SendChat(context.Background(), "outlook?")
			require.NoError(t, err)
			assert.Equal(t, "Markets are steady.", reply)
		})
	}
}

func TestSendChat_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"Sorry, I'm having trouble"}`},
		{"bad request", http.StatusBadRequest, `{"detail":"Message cannot be empty"}`},
		{"multiple choices", http.StatusMultipleChoices, `{"response":"hello"}`},
		{"missing response", http.StatusOK, `{"reply":"hello"}`},
		{"null response", http.StatusOK, `{"response":null}`},
		{"numeric response", http.StatusOK, `{"response":42}`},
		{"not json", http.StatusOK, `hello`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			reply, err := client.SendChat(context.Background(), "hello")
			assert.Error(t, err)
			assert.Empty(t, reply)
		})
	}
}

func TestSendChat_StatusHelpers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.SendChat(context.Background(), "hello")

	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.True(t, IsStatus(err, 0))
	assert.False(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsTimeout(err))
	assert.Contains(t, err.Error(), "500")
}

func TestSendChat_MissingResponseSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	_, err := client.SendChat(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrMissingResponse))
}

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestClient_BaseURL(t *testing.T) {
	c := NewClient("", nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c.SetBaseURL("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
	assert.Equal(t, "http://localhost:8000/stocks", c.endpoint("/stocks"))
	assert.Equal(t, "http://localhost:8000/chat", c.endpoint("/chat"))
}

func TestClient_NoTimeout(t *testing.T) {
	c := NewClient("http://localhost:8000", nil)
	assert.Zero(t, c.httpClient.Timeout)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "connection", ErrTypeConnection.String())
	assert.Equal(t, "timeout", ErrTypeTimeout.String())
	assert.Equal(t, "status", ErrTypeStatus.String())
	assert.Equal(t, "invalid_response", ErrTypeInvalidResponse.String())
	assert.Equal(t, "unknown", ErrTypeUnknown.String())
	assert.Equal(t, ErrTypeUnknown, Category(errors.New("plain")))
}

func TestClient_ConcurrentRequests(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat" {
			io.WriteString(w, `{"response":"ok"}`)
			return
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	done := make(chan error, 2)
	go func() {
		_, err := client.FetchStocks(context.Background())
		done <- err
	}()
	go func() {
		_, err := client.SendChat(context.Background(), "hi")
		done <- err
	}()

	for i := 0; i < 2; i++ {
		assert.NoError(t, <-done)
	}
	client.httpClient.CloseIdleConnections()
}
