package match

import (
	"fmt"
	"strings"
)

// Strategy names one of the matching algorithms. It is chosen once at startup.
type Strategy string

const (
	// StrategyRanked keeps items containing every input token and orders them
	// exact match first, then prefix matches, then the rest.
	StrategyRanked Strategy = "ranked"
	// StrategyToken keeps items containing every input token in candidate order.
	StrategyToken Strategy = "token"
	// StrategyFuzzy keeps items containing the input as a rune subsequence.
	StrategyFuzzy Strategy = "fuzzy"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyRanked

// ValidStrategies lists the accepted strategies in display order.
var ValidStrategies = []Strategy{StrategyRanked, StrategyToken, StrategyFuzzy}

// ParseStrategy resolves a configured strategy name. "default" and the empty
// string select DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", string(StrategyRanked):
		return StrategyRanked, nil
	case string(StrategyToken):
		return StrategyToken, nil
	case string(StrategyFuzzy):
		return StrategyFuzzy, nil
	}
	return "", fmt.Errorf("unknown match strategy %q (valid: %s)", name, strategyNames())
}

func strategyNames() string {
	names := make([]string, 0, len(ValidStrategies))
	for _, s := range ValidStrategies {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
