package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("insertion order", func(t *testing.T) {
		kv := getHeaders()
		want := []Pair{
			{"Foo", "bar"},
			{"Hello", "World"},
			{"Lorem", "ipsum"},
			{"hello", "Pavlo"},
		}

		require.Equal(t, len(want), kv.Len())
		require.Equal(t, want, kv.Expose())

		var got []Pair
		for key, value := range kv.Pairs() {
			got = append(got, Pair{key, value})
		}
		require.Equal(t, want, got)
	})

	t.Run("empty", func(t *testing.T) {
		require.True(t, New().Empty())
		require.False(t, getHeaders().Empty())
		require.Empty(t, slices.Collect(New().Values("Foo")))
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		kv := getHeaders()
		value, found := kv.Get("HELLO")
		require.True(t, found)
		require.Equal(t, "World", value)
		require.Equal(t, []string{"World", "Pavlo"}, slices.Collect(kv.Values("hElLo")))
		require.Equal(t, "fallback", kv.ValueOr("Content-Length", "fallback"))
		require.False(t, kv.Has("Content-Length"))
	})
}
