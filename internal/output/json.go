package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/substrate-tools/weightlens/internal/weights"
)

// JSONWriter outputs the full analysis as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, a *weights.Analysis) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
