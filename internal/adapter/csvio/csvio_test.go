package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeffDATA,DS_RECEITA,SOLICITANTE,TEL\n" +
	"2024-01-02,tc de cranio,Dra. Ana,+5511900000001\n" +
	"2024-01-03,NaN,Dr. Bruno,\n" +
	"2024-01-04,\"rx de torax, urgente\",,+5511900000003\n" +
	"2024-01-05\n"

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))

	require.NoError(t, err)
	assert.Equal(t, []string{"DATA", "DS_RECEITA", "SOLICITANTE", "TEL"}, table.Header)
	require.Len(t, table.Records, 4)

	assert.Equal(t, "tc de cranio", table.Records[0].Text)
	assert.Equal(t, "Dra. Ana", table.Records[0].Requester)
	assert.Equal(t, "+5511900000001", table.Records[0].Phone)

	assert.Equal(t, "", table.Records[1].Text)
	assert.Equal(t, "Dr. Bruno", table.Records[1].Requester)

	assert.Equal(t, "rx de torax, urgente", table.Records[2].Text)
	assert.Equal(t, "", table.Records[2].Requester)

	assert.Equal(t, "", table.Records[3].Text)
	assert.Equal(t, []string{"tc de cranio", "", "rx de torax, urgente", ""}, table.Texts())
}

func TestRead_MissingTextColumn(t *testing.T) {
	_, err := Read(strings.NewReader("DATA,TEL\n2024-01-02,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRead_RowShape(t *testing.T) {
	t.Run("short rows are padded to the header", func(t *testing.T) {
		table, err := Read(strings.NewReader(sampleCSV))

		require.NoError(t, err)
		for i, row := range table.Rows {
			assert.Len(t, row, len(table.Header), "row %d", i)
		}
	})

	t.Run("rows wider than the header are rejected", func(t *testing.T) {
		_, err := Read(strings.NewReader("DS_RECEITA,TEL\ntc de cranio,1,extra\n"))

		assert.ErrorIs(t, err, ErrRaggedRow)
	})

	t.Run("header without rows", func(t *testing.T) {
		table, err := Read(strings.NewReader("DS_RECEITA,SOLICITANTE,TEL\n"))

		require.NoError(t, err)
		assert.Empty(t, table.Records)

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, table, nil))
		assert.Equal(t, "DS_RECEITA,SOLICITANTE,TEL,exame_resultado\n", buf.String())
	})
}

func TestWrite(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Write(&buf, table, []string{"Tomografia", "Não é exame de imagem", "Radiografia", "Não é exame de imagem"})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "DATA,DS_RECEITA,SOLICITANTE,TEL,exame_resultado", lines[0])
	assert.Equal(t, "2024-01-02,tc de cranio,Dra. Ana,+5511900000001,Tomografia", lines[1])
	assert.Equal(t, "2024-01-04,\"rx de torax, urgente\",,+5511900000003,Radiografia", lines[3])
	assert.Equal(t, "2024-01-05,,,,Não é exame de imagem", lines[4])
}

func TestWrite_LabelCountMismatch(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	err = Write(&bytes.Buffer{}, table, []string{"Tomografia"})
	assert.Error(t, err)
}
