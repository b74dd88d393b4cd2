package output

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the projection as YAML using the plan file's field names.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(projection *domain.PlanProjection) ([]byte, error) {
	return yaml.Marshal(projection)
}
