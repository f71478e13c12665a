package hexconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for i, char := range "0123456789abcdef" {
		value, ok := Parse(byte(char))
		require.True(t, ok)
		require.Equal(t, byte(i), value)

		upper, ok := Parse(strings.ToUpper(string(char))[0])
		require.True(t, ok)
		require.Equal(t, value, upper)
	}

	for _, char := range []byte{'g', 'G', 'x', ' ', '%', 0, 0xff} {
		_, ok := Parse(char)
		require.False(t, ok, string(char))
	}
}

func TestByte(t *testing.T) {
	b, ok := Byte('2', 'f')
	require.True(t, ok)
	require.Equal(t, byte('/'), b)

	b, ok = Byte('F', 'F')
	require.True(t, ok)
	require.Equal(t, byte(0xff), b)

	_, ok = Byte('z', '0')
	require.False(t, ok)
}

func benchLocal(b *testing.B, str string) {
	b.SetBytes(int64(len(str)))
	b.ResetTimer()

	for range b.N {
		var result uint64

		for j := range str {
			v, _ := Parse(str[j])
			result = (result << 4) | uint64(v)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.Run("short", func(b *testing.B) {
		benchLocal(b, "123456789abcdef")
	})

	b.Run("long", func(b *testing.B) {
		benchLocal(b, strings.Repeat("123456789abcdef", 100))
	})
}
