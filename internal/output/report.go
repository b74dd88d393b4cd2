package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// binaryFormats are not written to a terminal.
var binaryFormats = map[string]bool{"pdf": true, "xlsx": true}

// IsBinary reports whether a format produces non-text output.
func IsBinary(format string) bool {
	return binaryFormats[NormalizeFormatName(format)]
}

// UnknownFormatError is returned for format names with no registered formatter.
type UnknownFormatError struct {
	Format string
}

func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (available: %s)", e.Format, strings.Join(AvailableFormatterNames(), ", "))
}

// GenerateReport renders projection in format and writes it to w.
func GenerateReport(w io.Writer, projection *domain.PlanProjection, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return UnknownFormatError{Format: format}
	}
	data, err := f.Format(projection)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
