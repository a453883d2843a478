// Package config defines the rate tables and runtime options of the decision
// engine and loads them from YAML.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/tax"
	"github.com/iwvelando/vehicle-decision/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for vehicle-decision. Tax rates are
// squashed to the top level of the YAML document.
type Configuration struct {
	tax.Table `mapstructure:",squash" yaml:",inline"`

	DepreciationRates       map[string]float64 `yaml:"depreciationRates"`
	DefaultDepreciationRate float64            `yaml:"defaultDepreciationRate"`
	RunningCostPerKm        map[string]float64 `yaml:"runningCostPerKm"`
	DefaultRunningCostPerKm float64            `yaml:"defaultRunningCostPerKm"`

	Defaults Defaults      `yaml:"defaults"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// Defaults are the fallbacks used when a form field is missing or malformed.
type Defaults struct {
	AnnualKm        float64 `yaml:"annualKm"`
	InterestRate    float64 `yaml:"interestRate"` // percent
	LoanTerm        float64 `yaml:"loanTerm"`
	OwnershipPeriod float64 `yaml:"ownershipPeriod"`
	VehicleType     string  `yaml:"vehicleType"`
	EntityType      string  `yaml:"entityType"`
	PaymentMethod   string  `yaml:"paymentMethod"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return &Configuration{
		Table: tax.DefaultTable(),
		DepreciationRates: map[string]float64{
			"sedan":  0.25,
			"suv":    0.25,
			"ute":    0.20,
			"van":    0.20,
			"truck":  0.15,
			"luxury": 0.25,
		},
		DefaultDepreciationRate: 0.25,
		RunningCostPerKm: map[string]float64{
			"sedan":  0.65,
			"suv":    0.85,
			"ute":    0.75,
			"van":    0.80,
			"truck":  1.20,
			"luxury": 1.50,
		},
		DefaultRunningCostPerKm: 0.70,
		Defaults: Defaults{
			AnnualKm:        constants.DefaultAnnualKm,
			InterestRate:    constants.DefaultInterestRate,
			LoanTerm:        constants.DefaultLoanTermYears,
			OwnershipPeriod: constants.DefaultOwnershipYears,
			VehicleType:     "sedan",
			EntityType:      "individual",
			PaymentMethod:   "finance",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format: constants.OutputFormatPretty,
		},
	}
}

// scalarKeys are registered as viper defaults so that environment variables
// such as VDE_COMPANYTAXRATE can override them without a config file entry.
func scalarKeys(c *Configuration) map[string]interface{} {
	return map[string]interface{}{
		"luxuryTax.thresholdStandard":      c.LuxuryTax.ThresholdStandard,
		"luxuryTax.thresholdFuelEfficient": c.LuxuryTax.ThresholdFuelEfficient,
		"luxuryTax.rate":                   c.LuxuryTax.Rate,
		"instantWriteOffThreshold":         c.InstantWriteOffThreshold,
		"fringeBenefit.rate":               c.FringeBenefit.Rate,
		"fringeBenefit.statutoryRate":      c.FringeBenefit.StatutoryRate,
		"companyTaxRate":                   c.CompanyTaxRate,
		"defaultDepreciationRate":          c.DefaultDepreciationRate,
		"defaultRunningCostPerKm":          c.DefaultRunningCostPerKm,
		"defaults.annualKm":                c.Defaults.AnnualKm,
		"defaults.interestRate":            c.Defaults.InterestRate,
		"defaults.loanTerm":                c.Defaults.LoanTerm,
		"defaults.ownershipPeriod":         c.Defaults.OwnershipPeriod,
		"defaults.vehicleType":             c.Defaults.VehicleType,
		"defaults.entityType":              c.Defaults.EntityType,
		"defaults.paymentMethod":           c.Defaults.PaymentMethod,
		"logging.level":                    c.Logging.Level,
		"logging.format":                   c.Logging.Format,
		"logging.outputFile":               c.Logging.OutputFile,
		"output.format":                    c.Output.Format,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there on top of Default. Keys missing from the file keep
// their defaults; per-category tables are merged; taxBrackets, when present,
// replace the default brackets entirely. An empty path loads only defaults
// and environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := Default()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range scalarKeys(configuration) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	if v.IsSet("taxBrackets") {
		configuration.Brackets = nil
	}

	if err := v.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return configuration, nil
}

// DepreciationRate returns the diminishing-value rate for a vehicle category.
func (c *Configuration) DepreciationRate(category string) float64 {
	if rate, ok := c.DepreciationRates[strings.ToLower(category)]; ok {
		return rate
	}
	return c.DefaultDepreciationRate
}

// CostPerKm returns the running cost per kilometre for a vehicle category.
func (c *Configuration) CostPerKm(category string) float64 {
	if cost, ok := c.RunningCostPerKm[strings.ToLower(category)]; ok {
		return cost
	}
	return c.DefaultRunningCostPerKm
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	add := func(msg string) {
		if msg != "" {
			warnings = append(warnings, msg)
		}
	}

	add(validation.ValidatePositive("luxuryTax.thresholdStandard", c.LuxuryTax.ThresholdStandard))
	add(validation.ValidatePositive("luxuryTax.thresholdFuelEfficient", c.LuxuryTax.ThresholdFuelEfficient))
	if c.LuxuryTax.ThresholdFuelEfficient > c.LuxuryTax.ThresholdStandard {
		add(fmt.Sprintf("luxuryTax.thresholdFuelEfficient (%v) is above luxuryTax.thresholdStandard (%v)",
			c.LuxuryTax.ThresholdFuelEfficient, c.LuxuryTax.ThresholdStandard))
	}
	add(validation.ValidateFraction("luxuryTax.rate", c.LuxuryTax.Rate))
	add(validation.ValidatePositive("instantWriteOffThreshold", c.InstantWriteOffThreshold))
	add(validation.ValidateFraction("fringeBenefit.rate", c.FringeBenefit.Rate))
	add(validation.ValidateFraction("fringeBenefit.statutoryRate", c.FringeBenefit.StatutoryRate))
	add(validation.ValidateFraction("companyTaxRate", c.CompanyTaxRate))
	warnings = append(warnings, validation.ValidateBrackets(c.Brackets)...)

	warnings = append(warnings, validation.ValidateCategoryTable("depreciationRates", c.DepreciationRates, 0, 1)...)
	add(validation.ValidateFraction("defaultDepreciationRate", c.DefaultDepreciationRate))
	warnings = append(warnings, validation.ValidateCategoryTable("runningCostPerKm", c.RunningCostPerKm, 0, 10)...)
	if c.DefaultRunningCostPerKm < 0 {
		add(fmt.Sprintf("defaultRunningCostPerKm should not be negative, got %v", c.DefaultRunningCostPerKm))
	}

	add(validation.ValidatePositive("defaults.annualKm", c.Defaults.AnnualKm))
	if c.Defaults.InterestRate < 0 || c.Defaults.InterestRate > constants.MaxPlausibleInterestRate {
		add(fmt.Sprintf("defaults.interestRate should be a percentage between 0 and %v, got %v",
			constants.MaxPlausibleInterestRate, c.Defaults.InterestRate))
	}
	add(validation.ValidatePositive("defaults.loanTerm", c.Defaults.LoanTerm))
	add(validation.ValidatePositive("defaults.ownershipPeriod", c.Defaults.OwnershipPeriod))

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			add(err.Error())
		}
	}

	return warnings
}
