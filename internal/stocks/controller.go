// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stocks

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultFetchError is shown when a failed fetch carries no usable message.
const DefaultFetchError = "Failed to fetch stock data"

// Fetcher retrieves the current stock snapshot.
type Fetcher interface {
	FetchStocks(ctx context.Context) ([]Record, error)
}

// =============================================================================
// LIST STATE
// =============================================================================

// ListState is the stock pane's state: the last good snapshot, whether a fetch
// is running, and the last fetch error.
type ListState struct {
	Records []Record
	Loading bool
	Err     string
}

// HasError reports whether the last fetch failed.
func (s ListState) HasError() bool {
	return s.Err != ""
}

// Initial reports whether no snapshot has been loaded yet.
func (s ListState) Initial() bool {
	return len(s.Records) == 0
}

// =============================================================================
// FETCH LIFECYCLE
// =============================================================================

// Ticket identifies one refresh. Results carry their ticket back to Apply.
type Ticket struct {
	Seq     uint64
	Started time.Time
}

// Result is the outcome of one fetch.
type Result struct {
	Ticket  Ticket
	Records []Record
	Err     error
}

// Controller owns the stock list fetch lifecycle. It is driven from a single
// goroutine (the dashboard's Update loop); only Fetch runs elsewhere.
type Controller struct {
	fetcher  Fetcher
	logger   *zap.Logger
	state    ListState
	seq      uint64
	inflight bool
}

// NewController creates a controller in the initial state: no records and
// Loading set, awaiting the first Refresh.
func NewController(fetcher Fetcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		fetcher: fetcher,
		logger:  logger,
		state:   ListState{Loading: true},
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() ListState {
	s := c.state
	s.Records = append([]Record(nil), c.state.Records...)
	return s
}

// Records returns the last good snapshot.
func (c *Controller) Records() []Record {
	return append([]Record(nil), c.state.Records...)
}

// CanRefresh reports whether the refresh control is actionable.
func (c *Controller) CanRefresh() bool {
	return !c.inflight
}

// Refresh starts a fetch: Loading is set and the error cleared. It returns
// false without touching state while another fetch is outstanding.
func (c *Controller) Refresh() (Ticket, bool) {
	if c.inflight {
		return Ticket{}, false
	}
	c.seq++
	c.inflight = true
	c.state.Loading = true
	c.state.Err = ""

	c.logger.Debug("stock refresh started", zap.Uint64("seq", c.seq))
	return Ticket{Seq: c.seq, Started: time.Now()}, true
}

// Fetch performs the single network attempt for a ticket. It touches no
// controller state and is safe to run off the UI goroutine.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Result {
	records, err := c.fetcher.FetchStocks(ctx)
	return Result{Ticket: t, Records: records, Err: err}
}

// Apply folds a fetch result into the state. Success replaces the snapshot
// wholesale; failure keeps the previous snapshot and records the error.
func (c *Controller) Apply(res Result) {
	if res.Ticket.Seq == c.seq {
		c.inflight = false
	}
	c.state.Loading = c.inflight

	elapsed := time.Since(res.Ticket.Started)
	if res.Err != nil {
		c.state.Err = errorText(res.Err)
		c.logger.Warn("stock refresh failed",
			zap.Uint64("seq", res.Ticket.Seq),
			zap.Duration("elapsed", elapsed),
			zap.Error(res.Err))
		return
	}

	if dups := DuplicateSymbols(res.Records); len(dups) > 0 {
		c.logger.Warn("stock snapshot has duplicate symbols", zap.Strings("symbols", dups))
	}

	c.state.Records = append([]Record(nil), res.Records...)
	c.state.Err = ""
	c.logger.Info("stock refresh complete",
		zap.Uint64("seq", res.Ticket.Seq),
		zap.Int("records", len(res.Records)),
		zap.Duration("elapsed", elapsed))
}

func errorText(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return DefaultFetchError
	}
	return msg
}
