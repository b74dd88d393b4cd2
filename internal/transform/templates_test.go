package transform

import (
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInTemplates_ApplyToBothModes(t *testing.T) {
	registry := CreateBuiltInTemplates()
	require.NotEmpty(t, registry.List())

	rate := domain.DefaultInputParameters()
	split := domain.DefaultInputParameters()
	split.Mode = domain.ModeSplit

	for _, tmpl := range registry.Templates() {
		t.Run(tmpl.Name, func(t *testing.T) {
			assert.NotEmpty(t, tmpl.Description)
			assert.NotEmpty(t, tmpl.Category)

			for _, base := range []domain.InputParameters{rate, split} {
				out, err := ApplyTemplate(base, tmpl)
				require.NoError(t, err)
				assert.Empty(t, out.Validate(), "template must keep the split at 100")
			}
		})
	}
}

func TestTemplateRegistry_Get(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"save_more_5", "frugal_retirement", "high_inflation", "conservative_returns",
		"aggressive_returns", "safe_withdrawal_3", "debt_focus"} {
		_, ok := registry.Get(name)
		assert.True(t, ok, name)
	}

	tmpl, ok := registry.Get("  SAVE_MORE_5 ")
	require.True(t, ok)
	assert.Equal(t, "save_more_5", tmpl.Name)

	_, ok = registry.Get("postpone_1yr")
	assert.False(t, ok)
}

func TestTemplates_Effects(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := domain.DefaultInputParameters()
	base.Mode = domain.ModeSplit

	tmpl, _ := registry.Get("save_more_5")
	out, err := ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.True(t, out.Rate.SavingsRate.Equal(decimal.NewFromInt(25)))
	assert.True(t, out.Split.SavingsPct.Equal(decimal.NewFromInt(15)))
	assert.True(t, out.Split.CostOfLivingPct.Equal(decimal.NewFromInt(35)))

	tmpl, _ = registry.Get("frugal_retirement")
	out, err = ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.True(t, out.RetirementCostOfLiving.Equal(decimal.NewFromInt(16000)))

	tmpl, _ = registry.Get("stress_test")
	out, err = ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.True(t, out.InflationRate.Equal(decimal.NewFromInt(4)))
	assert.True(t, out.InvestmentReturnRate.Equal(decimal.NewFromInt(3)))
	assert.True(t, out.WithdrawalRate.Equal(decimal.NewFromInt(3)))
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"a", "b"}, ParseTemplateList(" a, ,b "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Saving:")
	assert.Contains(t, help, "save_more_5")
	assert.Contains(t, help, "fireplan compare")
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("adjust:parameter=savings_rate,delta=5")
	require.NoError(t, err)
	out, err := ApplyTransforms(domain.DefaultInputParameters(), []ParameterTransform{tr})
	require.NoError(t, err)
	assert.True(t, out.Rate.SavingsRate.Equal(decimal.NewFromInt(25)))

	tr, err = registry.ParseTransformSpec("set_split:debt=25,investment=25,living=40,savings=10")
	require.NoError(t, err)
	out, err = ApplyTransforms(domain.DefaultInputParameters(), []ParameterTransform{tr})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSplit, out.Mode)

	tr, err = registry.ParseTransformSpec("switch_frequency:frequency=monthly")
	require.NoError(t, err)
	assert.Equal(t, "switch_frequency", tr.Name())

	_, err = registry.ParseTransformSpec("adjust")
	assert.Error(t, err)
	_, err = registry.ParseTransformSpec("adjust:parameter=savings_rate")
	assert.ErrorContains(t, err, "delta")
	_, err = registry.ParseTransformSpec("nope:x=1")
	assert.ErrorContains(t, err, "unknown transform")
	_, err = registry.ParseTransformSpec("set:parameter=tax_rate,value=ten")
	assert.Error(t, err)

	assert.Contains(t, registry.List(), "shift_split")
}
