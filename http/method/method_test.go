package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	require.Equal(t, GET, Parse("GET"))
	require.Equal(t, POST, Parse("POST"))
	require.Equal(t, Unknown, Parse("get"))
	require.Equal(t, Unknown, Parse("DELETE"))
	require.Equal(t, Unknown, Parse(""))
}

func TestString(t *testing.T) {
	for _, m := range []Method{GET, POST} {
		require.Equal(t, m, Parse(m.String()))
	}

	require.Equal(t, "UNKNOWN", Unknown.String())
}
