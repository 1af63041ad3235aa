package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynonymAugmenter_Augment(t *testing.T) {
	t.Run("substitutes known words", func(t *testing.T) {
		aug := NewSynonymAugmenter(map[string][]string{"torax": {"tórax"}}, 0.3, 42)

		out, err := aug.Augment("rx de torax")

		require.NoError(t, err)
		assert.Equal(t, "rx de tórax", out)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		aug := NewSynonymAugmenter(map[string][]string{"cranio": {"crânio"}}, 1, 42)

		out, err := aug.Augment("TC de CRANIO")

		require.NoError(t, err)
		assert.Equal(t, "TC de crânio", out)
	})

	t.Run("bounds substitutions by probability", func(t *testing.T) {
		dict := map[string][]string{"a": {"x"}, "b": {"x"}, "c": {"x"}, "d": {"x"}}
		aug := NewSynonymAugmenter(dict, 0.25, 42)

		out, err := aug.Augment("a b c d")

		require.NoError(t, err)
		replaced := 0
		for _, r := range out {
			if r == 'x' {
				replaced++
			}
		}
		assert.Equal(t, 1, replaced)
	})

	t.Run("returns text without candidates unchanged", func(t *testing.T) {
		aug := NewSynonymAugmenter(nil, 0, 42)

		out, err := aug.Augment("dipirona 500mg")

		require.NoError(t, err)
		assert.Equal(t, "dipirona 500mg", out)
	})

	t.Run("empty text", func(t *testing.T) {
		aug := NewSynonymAugmenter(nil, 0, 42)

		out, err := aug.Augment("")

		require.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("is reproducible for the same seed", func(t *testing.T) {
		first := NewSynonymAugmenter(nil, 0.5, 7)
		second := NewSynonymAugmenter(nil, 0.5, 7)

		for _, text := range []string{"solicito tomografia de abdome total", "ultrassom de joelho direito urgente"} {
			a, err := first.Augment(text)
			require.NoError(t, err)
			b, err := second.Augment(text)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})
}
