package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ffodds/season-projector/internal/domain"
)

// GenerateReport renders r with the named formatter and writes it to w.
func GenerateReport(w io.Writer, r *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveLeague writes a league snapshot as YAML.
func SaveLeague(league *domain.League, filename string) error {
	b, err := yaml.Marshal(league)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
