package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocal_AllLayouts(t *testing.T) {
	for _, in := range []string{
		"2025-03-10T09:30",
		"2025-03-10 09:30",
		"2025-03-10T09:30:00",
		" 2025-03-10 09:30:00 ",
	} {
		got, err := ParseLocal("America/Sao_Paulo", in)
		require.NoError(t, err, in)
		assert.Equal(t, "2025-03-10T09:30", FormatLocal("America/Sao_Paulo", got), in)
	}

	_, err := ParseLocal("America/Sao_Paulo", "10/03/2025 09:30")
	assert.Error(t, err)
}

func TestMatchLayout(t *testing.T) {
	assert.Equal(t, "2006-01-02 15:04:05", MatchLayout("2025-03-10 09:30:15"))
	assert.Equal(t, "", MatchLayout("2025-03-10T25:00"))
	assert.Equal(t, "", MatchLayout(""))
}
