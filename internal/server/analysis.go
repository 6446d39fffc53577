// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jeranaias/finsight-tui/internal/stocks"
)

// Disclaimer ends every demo reply.
const Disclaimer = "_This is not professional financial advice._"

// Analyze builds a short markdown reply to message from the quote snapshot.
// Quotes named in the message by symbol or company are described one per
// line; otherwise the reply is the market summary plus hints for risk and
// buy questions.
func Analyze(message string, quotes []stocks.Record) string {
	var b strings.Builder

	mentioned := mentionedRecords(message, quotes)
	if len(mentioned) > 0 {
		for _, r := range mentioned {
			fmt.Fprintf(&b, "- **%s** (%s): $%s, %s today", r.Symbol, r.Company, r.Price, stocks.FormatChange(r))
			if r.Unavailable() {
				b.WriteString(", data may be stale")
			}
			b.WriteString("\n")
		}
	} else {
		summary := stocks.Summarize(quotes)
		b.WriteString(summary.Text())
		b.WriteString("\n")

		lower := strings.ToLower(message)
		if summary.Valid() && strings.Contains(lower, "risk") {
			fmt.Fprintf(&b, "\nThe weakest name is **%s** at %s%%. Watch concentration in decliners.\n",
				summary.Worst.Symbol, summary.Worst.ChangePercent)
		}
		if summary.Valid() && strings.Contains(lower, "buy") {
			fmt.Fprintf(&b, "\nMomentum favours **%s** today, but a single session says little about value.\n",
				summary.Best.Symbol)
		}
	}

	b.WriteString("\n")
	b.WriteString(Disclaimer)
	return b.String()
}

// mentionedRecords returns the records whose symbol or company name appears
// in message, in snapshot order.
func mentionedRecords(message string, records []stocks.Record) []stocks.Record {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(message, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[strings.ToUpper(w)] = true
	}

	var out []stocks.Record
	for _, r := range records {
		if words[strings.ToUpper(r.Symbol)] || words[strings.ToUpper(companyKey(r.Company))] {
			out = append(out, r)
		}
	}
	return out
}

// companyKey is the first word of a company name, e.g. "Apple" for
// "Apple Inc.".
func companyKey(company string) string {
	fields := strings.FieldsFunc(company, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == ','
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// summarize is the GET /market-summary text.
func summarize(records []stocks.Record) string {
	return stocks.Summarize(records).Text()
}
