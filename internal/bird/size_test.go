package bird

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "bytes", input: "512 B", want: 512},
		{name: "bytes with padding", input: "9584  B", want: 9584},
		{name: "kilobytes", input: "1 kB", want: 1024},
		{name: "megabytes", input: "2 MB", want: 2097152},
		{name: "gigabytes", input: "1 GB", want: 1073741824},
		{name: "largest gigabyte value", input: "8589934591 GB", want: 8589934591 << 30},
		{name: "surrounding whitespace", input: "  15 kB ", want: 15360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize_Malformed(t *testing.T) {
	for _, input := range []string{"foo", "", "12", "12 TB", "1.5 kB", "kB", "12kB", "99999999999 GB", "9223372036854775808 B"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSize(input)
			assert.ErrorIs(t, err, ErrMalformedSize)
		})
	}
}
