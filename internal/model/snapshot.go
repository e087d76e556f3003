// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// ChartPoint is one intraday sample of the snapshot's price series.
type ChartPoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// Snapshot is a point-in-time bundle of quote, fundamentals, and intraday
// chart data for one ticker symbol. It lives only for the lifetime of one
// widget mount and is never cached across symbols or remounts.
//
// Price is a pointer because the backend aggregates several upstream APIs
// and returns null when the quote source had nothing for the symbol; a nil
// price is how "no data for this symbol" is detected.
type Snapshot struct {
	Symbol    string       `json:"symbol"`
	Company   string       `json:"company"`
	Price     *float64     `json:"price"`
	Change    float64      `json:"change"`
	Percent   float64      `json:"percent"`
	Open      float64      `json:"open"`
	High      float64      `json:"high"`
	Low       float64      `json:"low"`
	PrevClose float64      `json:"prev_close"`
	Volume    string       `json:"volume"`
	MarketCap string       `json:"market_cap"`
	Chart     []ChartPoint `json:"chart"`
}

// HasPrice reports whether the snapshot carries a usable price field.
func (s *Snapshot) HasPrice() bool {
	return s != nil && s.Price != nil
}
