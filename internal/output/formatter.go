package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(projection *domain.PlanProjection) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.PlanProjection) ([]byte, error)
}

func (ff FormatterFunc) Format(p *domain.PlanProjection) ([]byte, error) { return ff.F(p) }
func (ff FormatterFunc) Name() string                                 { return ff.ID }

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	JSONFormatter{},
	YAMLFormatter{},
	HTMLFormatter{},
	PDFFormatter{},
	XLSXFormatter{},
}

// extensions maps formatter names to file extensions where they differ.
var extensions = map[string]string{
	"console":      "txt",
	"detailed-csv": "csv",
}

// Extension returns the file extension for a formatter's output.
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return f.Name()
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
	"text":         "console",
	"table":        "console",
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"series":       "detailed-csv",
	"html-report":  "html",
	"json-pretty":  "json",
	"yml":          "yaml",
	"excel":        "xlsx",
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

// WriteFormatted runs a formatter and writes its output to a timestamped file in dir.
// Formats sharing an extension get their name in the file name.
func WriteFormatted(f Formatter, projection *domain.PlanProjection, dir string) (string, error) {
	data, err := f.Format(projection)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102_150405")
	if ext := Extension(f); ext != f.Name() {
		stamp += "_" + f.Name()
	}
	filename := filepath.Join(dir, fmt.Sprintf("fireplan_report_%s.%s", stamp, Extension(f)))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
