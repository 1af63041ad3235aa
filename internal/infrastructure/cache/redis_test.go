package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelKey(t *testing.T) {
	key := LabelKey("tc de cranio")

	assert.True(t, strings.HasPrefix(key, labelKeyPrefix))
	assert.Len(t, key, len(labelKeyPrefix)+64)
	assert.Equal(t, key, LabelKey("tc de cranio"))
	assert.NotEqual(t, key, LabelKey("tc de torax"))
}

func TestLabelCache_EmptyInput(t *testing.T) {
	c := NewLabelCache(nil, time.Hour)

	labels, err := c.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, labels)

	assert.NoError(t, c.SetMany(context.Background(), nil, nil))
}

func TestLabelCache_SetManyMismatch(t *testing.T) {
	c := NewLabelCache(nil, time.Hour)

	err := c.SetMany(context.Background(), []string{"a", "b"}, []string{"Tomografia"})
	assert.Error(t, err)
}
