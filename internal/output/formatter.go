package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ffodds/season-projector/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Report is everything one command hands to a formatter. Sections that are
// nil or empty are skipped.
type Report struct {
	League      string                       `json:"league" yaml:"league"`
	ThroughWeek int                          `json:"through_week,omitempty" yaml:"through_week,omitempty"`
	Standings   []domain.StandingRow         `json:"standings,omitempty" yaml:"standings,omitempty"`
	Divisions   map[int][]domain.StandingRow `json:"divisions,omitempty" yaml:"divisions,omitempty"`
	Projection  *domain.ProjectionResult     `json:"projection,omitempty" yaml:"projection,omitempty"`
	Swing       *domain.SwingReport          `json:"swing,omitempty" yaml:"swing,omitempty"`
	Schedule    []domain.ScheduleDifficulty  `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// Kind names the main section of the report, used for file names.
func (r *Report) Kind() string {
	switch {
	case r.Projection != nil:
		return "projection"
	case r.Swing != nil:
		return "swing"
	case len(r.Schedule) > 0:
		return "schedule"
	default:
		return "standings"
	}
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(r *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// WriteFormatted runs a formatter and writes the output to path. An empty
// path writes a timestamped file named after the report kind.
func WriteFormatted(f Formatter, r *Report, path string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("%s_report_%s.%s", r.Kind(), time.Now().Format("20060102_150405"), FileExtension(f))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// FileExtension returns the file extension for a formatter's output.
func FileExtension(f Formatter) string {
	if f.Name() == "console" {
		return "txt"
	}
	return f.Name()
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"txt":         "console",
	"json-pretty": "json",
	"yml":         "yaml",
	"htm":         "html",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
