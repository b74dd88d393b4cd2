package domain

import "fmt"

// IssueCode identifies a class of validation issue.
type IssueCode string

const (
	// AllocationMismatch is raised when the split shares do not add up to 100.
	AllocationMismatch IssueCode = "allocation_mismatch"
)

// Severity of a validation issue. Only warnings are produced by the core; range
// errors are rejected before a run starts.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidationIssue is a non-fatal finding about a set of inputs.
type ValidationIssue struct {
	Code     IssueCode `json:"code" yaml:"code"`
	Field    string    `json:"field" yaml:"field"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Message  string    `json:"message" yaml:"message"`
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Severity, v.Message)
}

// Validate checks cross-field invariants. Ranges are not re-checked here.
func (p InputParameters) Validate() []ValidationIssue {
	var issues []ValidationIssue
	if p.Mode == ModeSplit {
		total := p.Split.Total()
		if !total.Equal(hundred) {
			issues = append(issues, ValidationIssue{
				Code:     AllocationMismatch,
				Field:    "split_allocation",
				Severity: SeverityWarning,
				Message: fmt.Sprintf("salary allocation adds up to %s%%, expected 100%%; results are advisory",
					total.String()),
			})
		}
	}
	return issues
}

// HasIssue reports whether issues contains the given code.
func HasIssue(issues []ValidationIssue, code IssueCode) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
