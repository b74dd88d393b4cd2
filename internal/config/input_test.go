package config

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_ExamplePlan(t *testing.T) {
	parser := NewInputParser()
	cfg, err := parser.LoadFromFile("../../test/testdata/example_plan.yaml")
	require.NoError(t, err)

	assert.Equal(t, "THB", cfg.Currency)
	assert.Equal(t, domain.Yearly, cfg.Frequency)
	assert.Equal(t, 30, cfg.Profile.CurrentAge)
	require.Len(t, cfg.Scenarios, 2)
	assert.Equal(t, domain.ModeRate, cfg.Scenarios[0].Mode)
	assert.Equal(t, domain.ModeSplit, cfg.Scenarios[1].Mode)

	p := cfg.InputsFor(&cfg.Scenarios[0])
	assert.True(t, p.Rate.SavingsRate.Equal(decimal.NewFromInt(20)))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromBytes_Validation(t *testing.T) {
	base := `
frequency: %s
profile:
  current_age: 30
  current_salary: 50000
  current_savings: 100000
  total_debt: 50000
  cost_of_living: 20000
assumptions:
  salary_growth_rate: 3
  inflation_rate: %s
  investment_return_rate: 5
  withdrawal_rate: %s
scenarios:
%s
`
	rate := `  - name: Base
    rate_allocation: {savings_rate: 20, tax_rate: 10, investment_percentage: 50}`
	split := `  - name: Split
    split_allocation: {debt_pct: 20, investment_pct: 30, cost_of_living_pct: 40, savings_pct: 20}`

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"valid rate", fmt.Sprintf(base, "yearly", "2", "4", rate), ""},
		{"mode inferred from split, mismatch is not an error", fmt.Sprintf(base, "monthly", "2", "4", split), ""},
		{"inflation too high", fmt.Sprintf(base, "yearly", "12", "4", rate), "inflation_rate"},
		{"withdrawal below 1", fmt.Sprintf(base, "yearly", "2", "0.5", rate), "withdrawal_rate"},
		{"bad frequency", fmt.Sprintf(base, "weekly", "2", "4", rate), "frequency"},
		{"no scenarios", fmt.Sprintf(base, "yearly", "2", "4", "  []"), "no scenarios"},
		{"duplicate names", fmt.Sprintf(base, "yearly", "2", "4", rate+"\n"+rate), "duplicate"},
		{"rate mode without allocation", fmt.Sprintf(base, "yearly", "2", "4", "  - name: Empty\n    mode: rate"), "rate_allocation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewInputParser().LoadFromBytes([]byte(tt.yaml))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := DefaultConfiguration()
	path := filepath.Join(t.TempDir(), "plan.yaml")

	require.NoError(t, parser.SaveToFile(original, path))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.ScenarioNames(), loaded.ScenarioNames())
	assert.Equal(t, original.Frequency, loaded.Frequency)
	assert.True(t, loaded.Profile.CurrentSalary.Equal(original.Profile.CurrentSalary))
	assert.True(t, loaded.Scenarios[1].Split.Total().Equal(decimal.NewFromInt(100)))
}

func TestConfigurationFromInputs(t *testing.T) {
	p := domain.DefaultInputParameters()
	p.Mode = domain.ModeSplit
	cfg := ConfigurationFromInputs("Only", p)

	require.Len(t, cfg.Scenarios, 1)
	assert.Nil(t, cfg.Scenarios[0].Rate)
	require.NotNil(t, cfg.Scenarios[0].Split)
	got := cfg.InputsFor(&cfg.Scenarios[0])
	assert.Equal(t, domain.ModeSplit, got.Mode)
	assert.Equal(t, p.CurrentAge, got.CurrentAge)
	assert.True(t, got.Split.Total().Equal(p.Split.Total()))
	assert.True(t, got.WithdrawalRate.Equal(p.WithdrawalRate))
}

func TestParseDecimal(t *testing.T) {
	v, err := ParseDecimal(" 4.5% ")
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("4.5")))

	_, err = ParseDecimal("four")
	assert.Error(t, err)
}
