package discovery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rewired-gh/polylatency/internal/models"
)

// ExtractUpToken returns the token identifier of the "Up"/"Yes" outcome.
//
// The resolution order is fixed and reflects two historical response shapes:
//  1. tokens list: first token whose outcome contains "yes" or "up"
//     (case-insensitive), falling back to the first token in the list.
//  2. clobTokenIds: a JSON string is parsed first (malformed means no
//     token); a non-empty array yields its first element.
func ExtractUpToken(m models.Market) (string, error) {
	if len(m.Tokens) > 0 {
		for _, tok := range m.Tokens {
			outcome := strings.ToLower(tok.Outcome)
			if strings.Contains(outcome, "yes") || strings.Contains(outcome, "up") {
				return tokenID(tok)
			}
		}
		return tokenID(m.Tokens[0])
	}

	if !models.RawIsEmpty(m.ClobTokenIDs) {
		raw := m.ClobTokenIDs

		// Legacy shape: the array is itself JSON-encoded inside a string.
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err == nil {
			raw = json.RawMessage(encoded)
		}

		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			return "", fmt.Errorf("%w: malformed clobTokenIds", models.ErrNoToken)
		}
		if len(ids) > 0 && ids[0] != "" {
			return ids[0], nil
		}
	}

	return "", models.ErrNoToken
}

func tokenID(tok models.Token) (string, error) {
	if tok.TokenID == "" {
		return "", fmt.Errorf("%w: token has no id", models.ErrNoToken)
	}
	return tok.TokenID, nil
}
