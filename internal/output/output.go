package output

import (
	"fmt"
	"io"
	"os"

	"github.com/substrate-tools/weightlens/internal/weights"
)

// Writer renders an analysis in a specific format.
type Writer interface {
	Write(w io.Writer, a *weights.Analysis) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the analysis to the specified output (file path
// or stdout).
func WriteReport(a *weights.Analysis, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, a)
}
