package keys

import (
	"fmt"
	"strings"
)

// Canonical identifiers for the two tradable assets. A player card is
// one player's season line, a gametape is one player's single game.
// Behavior: lower-case, trimmed, joined with underscore. Suitable for
// stable DB keys and redis cache keys.

// CardKey produces the canonical key for a player card.
func CardKey(playerID, season string) string {
	return join(playerID, season)
}

// TapeKey produces the canonical key for a gametape.
func TapeKey(playerID, gameID string) string {
	return join(playerID, gameID)
}

// SplitKey breaks a canonical key back into its two parts. The second
// return is false when the key was not produced by CardKey/TapeKey.
func SplitKey(key string) (string, string, bool) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// StatsCacheKey is the redis key for one player's season averages.
func StatsCacheKey(playerID, season string) string {
	return fmt.Sprintf("stats:%s:%s", strings.TrimSpace(playerID), strings.TrimSpace(season))
}

func join(a, b string) string {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a + "_" + b
}
