// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stocks owns the stock list state, its fetch lifecycle, and the
// mapping from records to display rows.
package stocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status is the per-record data quality flag reported by the stock source.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// ParseStatus maps a wire status onto a Status. The live backend reports
// healthy quotes as "success", which is treated as StatusOK.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok", "success":
		return StatusOK, nil
	case "error":
		return StatusError, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// =============================================================================
// RECORD TYPE
// =============================================================================

// Record is one ticker's latest quote. Price, Change, and ChangePercent keep the
// literal decimal text from the source and are rendered verbatim.
type Record struct {
	Symbol        string `json:"symbol"`
	Company       string `json:"company"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Status        Status `json:"status"`
}

// Unavailable reports whether the source flagged this quote as bad data.
func (r Record) Unavailable() bool {
	return r.Status == StatusError
}

// wireRecord mirrors Record with raw figures so both JSON strings and JSON
// numbers decode without losing the literal text.
type wireRecord struct {
	Symbol        *string         `json:"symbol"`
	Company       *string         `json:"company"`
	Price         json.RawMessage `json:"price"`
	Change        json.RawMessage `json:"change"`
	ChangePercent json.RawMessage `json:"change_percent"`
	Status        *string         `json:"status"`
}

// UnmarshalJSON decodes a record, rejecting missing or mistyped fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Symbol == nil || strings.TrimSpace(*w.Symbol) == "" {
		return errors.New("stock record missing symbol")
	}
	if w.Status == nil {
		return fmt.Errorf("stock record %s missing status", *w.Symbol)
	}

	status, err := ParseStatus(*w.Status)
	if err != nil {
		return fmt.Errorf("stock record %s: %w", *w.Symbol, err)
	}

	price, err := figureText("price", w.Price)
	if err != nil {
		return fmt.Errorf("stock record %s: %w", *w.Symbol, err)
	}
	change, err := figureText("change", w.Change)
	if err != nil {
		return fmt.Errorf("stock record %s: %w", *w.Symbol, err)
	}
	percent, err := figureText("change_percent", w.ChangePercent)
	if err != nil {
		return fmt.Errorf("stock record %s: %w", *w.Symbol, err)
	}

	company := *w.Symbol
	if w.Company != nil {
		company = *w.Company
	}

	*r = Record{
		Symbol:        *w.Symbol,
		Company:       company,
		Price:         price,
		Change:        change,
		ChangePercent: percent,
		Status:        status,
	}
	return nil
}

// figureText returns the literal text of a numeric field, accepting either a
// JSON string or a JSON number.
func figureText(field string, raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("missing %s", field)
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid %s: %w", field, err)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid %s: expected string or number", field)
	}
	return n.String(), nil
}

// DecodeList decodes a JSON array of records, preserving source order.
func DecodeList(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.New("stock list is null")
	}
	return records, nil
}

// DuplicateSymbols returns symbols that appear more than once, in first-seen order.
func DuplicateSymbols(records []Record) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		seen[r.Symbol]++
		if seen[r.Symbol] == 2 {
			dups = append(dups, r.Symbol)
		}
	}
	return dups
}
