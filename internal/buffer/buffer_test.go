package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Run("no overflow", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte("Hello")))
		require.True(t, buff.Append([]byte(", World!")))
		require.Equal(t, "Hello, World!", string(buff.Bytes()))
		require.Equal(t, 13, buff.Len())
		require.Equal(t, 7, buff.Free())
	})

	t.Run("exactly the limit", func(t *testing.T) {
		buff := New(4, 20)
		require.True(t, buff.Append([]byte(strings.Repeat("a", 20))))
		require.Zero(t, buff.Free())
	})

	t.Run("over the limit", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte(strings.Repeat("a", 15))))
		require.False(t, buff.Append([]byte("123456")))
		require.Equal(t, 15, buff.Len(), "rejected data must not be appended")
	})

	t.Run("clear", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte(strings.Repeat("a", 20))))
		buff.Clear()
		require.Zero(t, buff.Len())
		require.True(t, buff.Append([]byte("b")))
		require.Equal(t, "b", string(buff.Bytes()))
	})
}

func BenchmarkBuffer(b *testing.B) {
	buff := New(1024, 4096)
	chunk := []byte(strings.Repeat("a", 1024))

	b.ReportAllocs()
	b.SetBytes(int64(len(chunk)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if !buff.Append(chunk) {
			buff.Clear()
		}
	}
}
