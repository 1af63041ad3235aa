package csvio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

// WriteSamples writes one {"text","label"} JSON object per line
func WriteSamples(w io.Writer, samples []entity.LabeledSample) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, s := range samples {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to write sample %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadSamples parses a JSON Lines sample file; blank lines are skipped
func ReadSamples(r io.Reader) ([]entity.LabeledSample, error) {
	var samples []entity.LabeledSample
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var s entity.LabeledSample
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
