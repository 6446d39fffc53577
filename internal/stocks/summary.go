// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stocks

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SummaryUnavailable is shown when no record carries usable data.
const SummaryUnavailable = "Unable to generate market summary due to data unavailability."

// Summary aggregates a snapshot's movers.
type Summary struct {
	Up    int
	Down  int
	Total int

	Best  Record
	Worst Record
}

// Valid reports whether any record contributed to the summary.
func (s Summary) Valid() bool {
	return s.Total > 0
}

// Text renders the one-line market summary.
func (s Summary) Text() string {
	if !s.Valid() {
		return SummaryUnavailable
	}
	sign := ""
	if pct, err := decimal.NewFromString(s.Best.ChangePercent); err == nil && pct.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Market mixed: %d stocks up, %d down. %s leads at %s%s%%.",
		s.Up, s.Down, s.Best.Symbol, sign, s.Best.ChangePercent)
}

// Summarize counts advancing and declining records and picks the best and
// worst performers by change percent. Records flagged unavailable, or whose
// figures do not parse, are skipped.
func Summarize(records []Record) Summary {
	var (
		s                 Summary
		bestPct, worstPct decimal.Decimal
	)

	for _, r := range records {
		if r.Unavailable() {
			continue
		}
		change, err := decimal.NewFromString(r.Change)
		if err != nil {
			continue
		}
		pct, err := decimal.NewFromString(r.ChangePercent)
		if err != nil {
			continue
		}

		switch {
		case change.IsPositive():
			s.Up++
		case change.IsNegative():
			s.Down++
		}

		if s.Total == 0 || pct.GreaterThan(bestPct) {
			s.Best, bestPct = r, pct
		}
		if s.Total == 0 || pct.LessThan(worstPct) {
			s.Worst, worstPct = r, pct
		}
		s.Total++
	}
	return s
}
