// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stocks

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFetcher returns canned results in order.
type fakeFetcher struct {
	results []fetchOutcome
	calls   int
}

type fetchOutcome struct {
	records []Record
	err     error
}

func (f *fakeFetcher) FetchStocks(ctx context.Context) ([]Record, error) {
	out := f.results[f.calls]
	f.calls++
	return out.records, out.err
}

func sampleRecords() []Record {
	return []Record{
		{Symbol: "AAPL", Company: "Apple Inc.", Price: "150.25", Change: "2.50", ChangePercent: "1.69", Status: StatusOK},
		{Symbol: "MSFT", Company: "Microsoft Corporation", Price: "151.00", Change: "-1.20", ChangePercent: "-0.79", Status: StatusOK},
		{Symbol: "TSLA", Company: "Tesla Inc.", Price: "0.0", Change: "0.0", ChangePercent: "0.00", Status: StatusError},
	}
}

// =============================================================================
// DECODING TESTS
// =============================================================================

func TestDecodeList_StringAndNumberFigures(t *testing.T) {
	body := []byte(`[
		{"symbol":"AAPL","company":"Apple Inc.","price":"150.25","change":"2.50","change_percent":"1.69","status":"ok"},
		{"symbol":"NVDA","company":"NVIDIA Corporation","price":441.78,"change":12.34,"change_percent":"2.87","status":"success"},
		{"symbol":"TSLA","company":"Tesla Inc.","price":0.0,"change":-4.21,"change_percent":"-1.74","status":"error"}
	]`)

	got, err := DecodeList(body)
	require.NoError(t, err)

	want := []Record{
		{Symbol: "AAPL", Company: "Apple Inc.", Price: "150.25", Change: "2.50", ChangePercent: "1.69", Status: StatusOK},
		{Symbol: "NVDA", Company: "NVIDIA Corporation", Price: "441.78", Change: "12.34", ChangePercent: "2.87", Status: StatusOK},
		{Symbol: "TSLA", Company: "Tesla Inc.", Price: "0.0", Change: "-4.21", ChangePercent: "-1.74", Status: StatusError},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeList mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeList_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null body", `null`},
		{"object body", `{"symbol":"AAPL"}`},
		{"missing symbol", `[{"company":"x","price":"1","change":"1","change_percent":"1","status":"ok"}]`},
		{"missing status", `[{"symbol":"AAPL","price":"1","change":"1","change_percent":"1"}]`},
		{"unknown status", `[{"symbol":"AAPL","price":"1","change":"1","change_percent":"1","status":"stale"}]`},
		{"missing change", `[{"symbol":"AAPL","price":"1","change_percent":"1","status":"ok"}]`},
		{"bool price", `[{"symbol":"AAPL","price":true,"change":"1","change_percent":"1","status":"ok"}]`},
		{"truncated", `[{"symbol":"AAPL"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeList([]byte(tc.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeList_CompanyDefaultsToSymbol(t *testing.T) {
	got, err := DecodeList([]byte(`[{"symbol":"AMZN","price":"1","change":"0","change_percent":"0","status":"ok"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AMZN", got[0].Company)
}

func TestDuplicateSymbols(t *testing.T) {
	records := []Record{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "A"}, {Symbol: "A"}, {Symbol: "B"}}
	assert.Equal(t, []string{"A", "B"}, DuplicateSymbols(records))
	assert.Empty(t, DuplicateSymbols(sampleRecords()))
}

// =============================================================================
// RENDER TESTS
// =============================================================================

func TestRowFor_PositiveChange(t *testing.T) {
	row := RowFor(Record{Symbol: "AAPL", Company: "Apple Inc.", Price: "150.25", Change: "2.50", ChangePercent: "1.69", Status: StatusOK})

	assert.Equal(t, "$150.25", row.Price)
	assert.Equal(t, "+$2.50 (+1.69%)", row.Change)
	assert.True(t, row.Positive)
	assert.False(t, row.Unavailable)
	assert.Equal(t, "AAPL", row.Key)
}

func TestRowFor_NegativeChange(t *testing.T) {
	row := RowFor(Record{Symbol: "MSFT", Price: "151.00", Change: "-1.20", ChangePercent: "-0.79", Status: StatusOK})

	assert.Equal(t, "-$1.20 (-0.79%)", row.Change)
	assert.NotContains(t, row.Change, "+")
	assert.False(t, row.Positive)
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name    string
		change  string
		percent string
		want    string
	}{
		{"positive", "2.50", "1.69", "+$2.50 (+1.69%)"},
		{"negative moves sign before dollar", "-1.20", "-0.79", "-$1.20 (-0.79%)"},
		{"negative keeps digits verbatim", "-0.050", "-0.0300", "-$0.050 (-0.0300%)"},
		{"zero", "0.00", "0.00", "$0.00 (0.00%)"},
		{"unparseable", "n/a", "n/a", "$n/a (n/a%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatChange(Record{Change: tt.change, ChangePercent: tt.percent})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPositive(t *testing.T) {
	tests := []struct {
		change string
		want   bool
	}{
		{"2.50", true},
		{"0.01", true},
		{"0", false},
		{"0.00", false},
		{"-0.00", false},
		{"-1.20", false},
		{"", false},
		{"N/A", false},
		{"12.34", true},
	}

	for _, tc := range tests {
		if got := IsPositive(tc.change); got != tc.want {
			t.Errorf("IsPositive(%q) = %v, want %v", tc.change, got, tc.want)
		}
	}
}

func TestRenderRows_SkeletonWhileInitialLoad(t *testing.T) {
	rows := RenderRows(ListState{Loading: true}, 0)

	require.Len(t, rows, SkeletonRowCount)
	for _, r := range rows {
		assert.True(t, r.Placeholder)
		assert.Empty(t, r.Symbol)
	}

	assert.Len(t, RenderRows(ListState{Loading: true}, 3), 3)
}

func TestRenderRows_KeepsRowsDuringRefresh(t *testing.T) {
	rows := RenderRows(ListState{Records: sampleRecords(), Loading: true}, 0)
	require.Len(t, rows, 3)
	assert.False(t, rows[0].Placeholder)
}

func TestRenderRows_OrderMatchesSource(t *testing.T) {
	records := sampleRecords()
	rows := RenderRows(ListState{Records: records}, 0)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Symbol
	}
	if diff := cmp.Diff([]string{"AAPL", "MSFT", "TSLA"}, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rows[2].Unavailable)
	assert.Equal(t, "$0.0", rows[2].Price, "figures still shown for unavailable rows")
}

func TestRenderRows_EmptyListAfterLoad(t *testing.T) {
	assert.Empty(t, RenderRows(ListState{Records: []Record{}}, 0))
}

// =============================================================================
// CONTROLLER TESTS
// =============================================================================

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeFetcher{}, nil)
	s := c.State()

	assert.True(t, s.Loading)
	assert.Empty(t, s.Records)
	assert.False(t, s.HasError())
	assert.True(t, c.CanRefresh())
}

func TestController_SuccessReplacesRecords(t *testing.T) {
	f := &fakeFetcher{results: []fetchOutcome{{records: sampleRecords()}}}
	c := NewController(f, zap.NewNop())

	ticket, ok := c.Refresh()
	require.True(t, ok)
	assert.False(t, c.CanRefresh())

	c.Apply(c.Fetch(context.Background(), ticket))

	s := c.State()
	assert.False(t, s.Loading)
	assert.False(t, s.HasError())
	if diff := cmp.Diff(sampleRecords(), s.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, c.CanRefresh())
}

func TestController_FailurePreservesRecords(t *testing.T) {
	f := &fakeFetcher{results: []fetchOutcome{
		{records: sampleRecords()},
		{err: errors.New("HTTP 503 Service Unavailable")},
	}}
	c := NewController(f, zap.NewNop())

	ticket, _ := c.Refresh()
	c.Apply(c.Fetch(context.Background(), ticket))
	before := c.Records()

	ticket, ok := c.Refresh()
	require.True(t, ok)
	assert.True(t, c.State().Loading)
	assert.False(t, c.State().HasError(), "refresh clears the error")

	c.Apply(c.Fetch(context.Background(), ticket))

	s := c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, "HTTP 503 Service Unavailable", s.Err)
	if diff := cmp.Diff(before, s.Records); diff != "" {
		t.Errorf("records changed after failed fetch (-want +got):\n%s", diff)
	}
}

func TestController_FailureOnFirstLoad(t *testing.T) {
	f := &fakeFetcher{results: []fetchOutcome{{err: errors.New(" ")}}}
	c := NewController(f, nil)

	ticket, _ := c.Refresh()
	c.Apply(c.Fetch(context.Background(), ticket))

	s := c.State()
	assert.Equal(t, DefaultFetchError, s.Err)
	assert.False(t, s.Loading)
	assert.Empty(t, RenderRows(s, 0), "no skeleton after a failed first load")
}

func TestController_RefreshIgnoredWhileInFlight(t *testing.T) {
	c := NewController(&fakeFetcher{}, nil)

	first, ok := c.Refresh()
	require.True(t, ok)

	_, ok = c.Refresh()
	assert.False(t, ok)

	c.Apply(Result{Ticket: first, Records: sampleRecords()})
	second, ok := c.Refresh()
	require.True(t, ok)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestController_StateReturnsCopy(t *testing.T) {
	c := NewController(&fakeFetcher{}, nil)
	ticket, _ := c.Refresh()
	c.Apply(Result{Ticket: ticket, Records: sampleRecords()})

	s := c.State()
	s.Records[0].Symbol = "XXXX"

	assert.Equal(t, "AAPL", c.Records()[0].Symbol)
}

// =============================================================================
// SUMMARY TESTS
// =============================================================================

func TestSummarize(t *testing.T) {
	records := []Record{
		{Symbol: "AAPL", Change: "2.15", ChangePercent: "1.22", Status: StatusOK},
		{Symbol: "GOOGL", Change: "-1.83", ChangePercent: "-1.28", Status: StatusOK},
		{Symbol: "NVDA", Change: "12.34", ChangePercent: "2.87", Status: StatusOK},
		{Symbol: "TSLA", Change: "-4.21", ChangePercent: "-1.74", Status: StatusOK},
		{Symbol: "AMZN", Change: "0.00", ChangePercent: "0.00", Status: StatusOK},
		{Symbol: "META", Change: "9.99", ChangePercent: "9.99", Status: StatusError},
	}

	s := Summarize(records)

	assert.Equal(t, 2, s.Up)
	assert.Equal(t, 2, s.Down)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, "NVDA", s.Best.Symbol)
	assert.Equal(t, "TSLA", s.Worst.Symbol)
	assert.Equal(t, "Market mixed: 2 stocks up, 2 down. NVDA leads at +2.87%.", s.Text())
}

func TestSummarize_NoUsableData(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{"empty", nil},
		{"all unavailable", []Record{{Symbol: "AAPL", Change: "1", ChangePercent: "1", Status: StatusError}}},
		{"unparseable", []Record{{Symbol: "AAPL", Change: "n/a", ChangePercent: "1", Status: StatusOK}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.records)
			assert.False(t, s.Valid())
			assert.Equal(t, SummaryUnavailable, s.Text())
		})
	}
}

func TestSummary_NegativeLeaderHasNoPlus(t *testing.T) {
	s := Summarize([]Record{{Symbol: "GOOGL", Change: "-1.83", ChangePercent: "-1.28", Status: StatusOK}})
	assert.Equal(t, "Market mixed: 0 stocks up, 1 down. GOOGL leads at -1.28%.", s.Text())
}
