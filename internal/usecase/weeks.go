package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseWeekSpec expands a week filter such as "11", "8-10", or "8,9,11-13"
// into a sorted, de-duplicated set of week numbers. An empty spec means no
// week filter. Malformed tokens are rejected here, before any data is
// touched, with the offending token named.
func ParseWeekSpec(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	var weeks []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("%w: empty week token in %q", ErrInvalidInput, spec)
		}

		lo, hi := token, token
		if i := strings.Index(token, "-"); i >= 0 {
			lo, hi = token[:i], token[i+1:]
		}

		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: week token %q is not a number or range", ErrInvalidInput, token)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("%w: week token %q is not a number or range", ErrInvalidInput, token)
		}
		if start < 1 {
			return nil, fmt.Errorf("%w: week token %q is below week 1", ErrInvalidInput, token)
		}
		if end < start {
			return nil, fmt.Errorf("%w: week range %q is descending", ErrInvalidInput, token)
		}

		for w := start; w <= end; w++ {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			weeks = append(weeks, w)
		}
	}

	sort.Ints(weeks)
	return weeks, nil
}
