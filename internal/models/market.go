// Package models defines the core domain entities: markets, outcome tokens,
// and geoblock status.
package models

import (
	"bytes"
	"encoding/json"
)

// Market represents a single prediction market as returned by the Gamma
// markets endpoint. Every field is optional in the API response; zero values
// stand in for absent fields.
type Market struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Question    string `json:"question"`
	ConditionID string `json:"conditionId"`
	Active      bool   `json:"active"`
	Closed      bool   `json:"closed"`
	EndDate     string `json:"endDate"`

	Tokens []Token `json:"tokens"`

	// ClobTokenIDs is the legacy encoding of the token list: either a JSON
	// array of strings or a JSON string containing such an array. Kept raw so
	// the extractor can apply the documented fallback order.
	ClobTokenIDs json.RawMessage `json:"clobTokenIds"`
}

// HasTokenInfo reports whether the market carries any token identifiers,
// through either the tokens list or the legacy clobTokenIds field.
func (m *Market) HasTokenInfo() bool {
	return len(m.Tokens) > 0 || !RawIsEmpty(m.ClobTokenIDs)
}

// RawIsEmpty reports whether a raw JSON field is absent or null.
func RawIsEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Token is one side of a binary market, e.g. "Up"/"Down" or "Yes"/"No".
type Token struct {
	TokenID string `json:"token_id"`
	Outcome string `json:"outcome"`
	Winner  bool   `json:"winner"`
}
