package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/autounclaim/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", raw)
	}
}

// Write renders result to w in the requested format.
func Write(w io.Writer, result domain.PruneResult, format Format, opts RenderOptions) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result.Summary()); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result.Summary()); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return encoder.Close()
	case FormatText, "":
		output, err := Render(result, opts)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		_, err = fmt.Fprintln(w, output)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
