// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stocks

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SkeletonRowCount is the number of placeholder rows shown before the first
// snapshot arrives.
const SkeletonRowCount = 6

// UnavailableText marks rows whose source status is error.
const UnavailableText = "Data unavailable"

// Row is the display form of one stock record, or a placeholder.
type Row struct {
	Key         string
	Placeholder bool

	Symbol  string
	Company string
	Price   string
	Change  string

	Positive    bool
	Unavailable bool
}

// RenderRows maps list state to display rows. While the first load is running
// it returns skeleton placeholder rows (skeleton <= 0 selects
// SkeletonRowCount); otherwise one row per record, in source order.
func RenderRows(state ListState, skeleton int) []Row {
	if state.Loading && len(state.Records) == 0 {
		return SkeletonRows(skeleton)
	}

	rows := make([]Row, 0, len(state.Records))
	for _, r := range state.Records {
		rows = append(rows, RowFor(r))
	}
	return rows
}

// SkeletonRows returns n content-free placeholder rows.
func SkeletonRows(n int) []Row {
	if n <= 0 {
		n = SkeletonRowCount
	}
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Key: "skeleton-" + strconv.Itoa(i), Placeholder: true}
	}
	return rows
}

// RowFor renders a single record. Figures are copied verbatim; only the sign
// test interprets them numerically.
func RowFor(r Record) Row {
	return Row{
		Key:         r.Symbol,
		Symbol:      r.Symbol,
		Company:     r.Company,
		Price:       "$" + r.Price,
		Change:      FormatChange(r),
		Positive:    IsPositive(r.Change),
		Unavailable: r.Unavailable(),
	}
}

// FormatChange renders "+$2.50 (+1.69%)" for positive changes and
// "-$1.20 (-0.79%)" for negative ones. The digits are copied verbatim; only a
// leading minus moves in front of the dollar sign.
func FormatChange(r Record) string {
	if IsPositive(r.Change) {
		return "+$" + r.Change + " (+" + r.ChangePercent + "%)"
	}
	if strings.HasPrefix(r.Change, "-") {
		return "-$" + r.Change[1:] + " (" + r.ChangePercent + "%)"
	}
	return "$" + r.Change + " (" + r.ChangePercent + "%)"
}

// IsPositive reports whether change, read as a decimal, is strictly greater
// than zero. Unparseable text is not positive.
func IsPositive(change string) bool {
	d, err := decimal.NewFromString(change)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// IsNegative reports whether change, read as a decimal, is strictly below zero.
func IsNegative(change string) bool {
	d, err := decimal.NewFromString(change)
	if err != nil {
		return false
	}
	return d.IsNegative()
}
