// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"

	"github.com/jeranaias/finsight-tui/internal/stocks"
)

// Quote is one element of the GET /stocks response. Price and change are
// JSON numbers and healthy quotes report status "success", as the hosted
// backend does.
type Quote struct {
	Symbol        string      `json:"symbol"`
	Company       string      `json:"company"`
	Price         json.Number `json:"price"`
	Change        json.Number `json:"change"`
	ChangePercent string      `json:"change_percent"`
	Status        string      `json:"status"`
}

// MockQuotes returns the demo watchlist.
func MockQuotes() []Quote {
	return []Quote{
		{Symbol: "AAPL", Company: "Apple Inc.", Price: "178.42", Change: "2.15", ChangePercent: "1.22", Status: "success"},
		{Symbol: "MSFT", Company: "Microsoft Corporation", Price: "384.91", Change: "5.67", ChangePercent: "1.49", Status: "success"},
		{Symbol: "GOOGL", Company: "Alphabet Inc.", Price: "141.25", Change: "-1.83", ChangePercent: "-1.28", Status: "success"},
		{Symbol: "NVDA", Company: "NVIDIA Corporation", Price: "441.78", Change: "12.34", ChangePercent: "2.87", Status: "success"},
		{Symbol: "AMZN", Company: "Amazon.com Inc.", Price: "145.23", Change: "0.89", ChangePercent: "0.62", Status: "success"},
		{Symbol: "TSLA", Company: "Tesla Inc.", Price: "238.45", Change: "-4.21", ChangePercent: "-1.74", Status: "success"},
	}
}

// Records converts quotes into client records.
func Records(quotes []Quote) []stocks.Record {
	out := make([]stocks.Record, 0, len(quotes))
	for _, q := range quotes {
		status, err := stocks.ParseStatus(q.Status)
		if err != nil {
			status = stocks.StatusError
		}
		out = append(out, stocks.Record{
			Symbol:        q.Symbol,
			Company:       q.Company,
			Price:         q.Price.String(),
			Change:        q.Change.String(),
			ChangePercent: q.ChangePercent,
			Status:        status,
		})
	}
	return out
}
