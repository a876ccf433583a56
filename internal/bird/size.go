package bird

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// sizePattern matches daemon formatted sizes such as "512 B", "9584  B" or "15 kB".
var sizePattern = regexp.MustCompile(`^(\d+) +([kMG]?)B$`)

var sizeUnits = map[string]int64{
	"":  1,
	"k": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
}

// ParseSize converts a "<number> <unit>B" string into a byte count.
func ParseSize(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSize, s)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedSize, s, err)
	}

	unit := sizeUnits[m[2]]
	if n > math.MaxInt64/unit {
		return 0, fmt.Errorf("%w: %q: out of range", ErrMalformedSize, s)
	}

	return n * unit, nil
}
