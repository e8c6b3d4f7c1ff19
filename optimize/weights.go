package optimize

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWeights parses a comma-separated "place=weight" list, e.g.
// "p1=10,p2=-5", into the integer weight map consumed by Maximize (spec.md
// §4.6: "weight mapping w : place -> Z"). Whitespace around terms and
// around '=' is ignored. This recovers the original implementation's
// command-line weight syntax (spec.md's distillation dropped the CLI
// surface for it, but Maximize's contract is unchanged).
func ParseWeights(expr string) (map[string]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyObjective
	}

	weights := make(map[string]int)
	for _, term := range strings.Split(expr, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		parts := strings.SplitN(term, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedTerm, term)
		}
		place := strings.TrimSpace(parts[0])
		if place == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedTerm, term)
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedTerm, term, err)
		}
		weights[place] = value
	}
	return weights, nil
}
