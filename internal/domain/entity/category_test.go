package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_RoundTrip(t *testing.T) {
	for idx := 0; idx < NumCategories; idx++ {
		c, ok := CategoryFromIndex(idx)
		assert.True(t, ok)

		back, ok := CategoryFromName(c.String())
		assert.True(t, ok)
		assert.Equal(t, idx, back.Index())
	}
}

func TestCategory_FixedTable(t *testing.T) {
	expected := map[int]string{
		0: "Tomografia",
		1: "Ressonância Magnética",
		2: "Ultrassonografia",
		3: "Radiografia",
		4: "Eletrocardiograma",
		5: "Densitometria",
	}

	assert.Equal(t, 6, NumCategories)
	for idx, name := range expected {
		c, ok := CategoryFromIndex(idx)
		assert.True(t, ok)
		assert.Equal(t, name, c.String())
	}
}

func TestCategoryFromIndex_OutOfRange(t *testing.T) {
	_, ok := CategoryFromIndex(6)
	assert.False(t, ok)

	_, ok = CategoryFromIndex(-1)
	assert.False(t, ok)
}

func TestIsExamLabel(t *testing.T) {
	assert.True(t, IsExamLabel("Radiografia"))
	assert.False(t, IsExamLabel(NotImageExam))
	assert.False(t, IsExamLabel(""))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, NumCategories)
	for i, c := range cats {
		assert.Equal(t, i, c.Index())
	}
}
