// Package tax resolves the tax side of a vehicle purchase: luxury car tax,
// marginal rates, depreciation or instant write-off, and fringe-benefit
// exposure. Every rate comes from a Table so yearly updates are data only.
package tax

// LuxuryTaxRates holds the luxury car tax thresholds and rate.
type LuxuryTaxRates struct {
	ThresholdStandard      float64 `yaml:"thresholdStandard" json:"thresholdStandard"`
	ThresholdFuelEfficient float64 `yaml:"thresholdFuelEfficient" json:"thresholdFuelEfficient"`
	Rate                   float64 `yaml:"rate" json:"rate"`
}

// FringeBenefitRates holds the statutory fraction and the FBT rate.
type FringeBenefitRates struct {
	Rate          float64 `yaml:"rate" json:"rate"`
	StatutoryRate float64 `yaml:"statutoryRate" json:"statutoryRate"`
}

// Bracket is one marginal bracket. Min is inclusive and Max exclusive; a Max
// of zero means the bracket has no upper bound.
type Bracket struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// Contains reports whether income falls inside the bracket.
func (b Bracket) Contains(income float64) bool {
	if income < b.Min {
		return false
	}
	return b.Max <= 0 || income < b.Max
}

// Table is the complete set of tax rates used by one computation.
type Table struct {
	LuxuryTax                LuxuryTaxRates     `yaml:"luxuryTax" json:"luxuryTax"`
	InstantWriteOffThreshold float64            `yaml:"instantWriteOffThreshold" json:"instantWriteOffThreshold"`
	FringeBenefit            FringeBenefitRates `yaml:"fringeBenefit" json:"fringeBenefit"`
	CompanyTaxRate           float64            `yaml:"companyTaxRate" json:"companyTaxRate"`
	Brackets                 []Bracket          `mapstructure:"taxBrackets" yaml:"taxBrackets" json:"taxBrackets"`
}

// DefaultTable returns the built-in rates.
func DefaultTable() Table {
	return Table{
		LuxuryTax: LuxuryTaxRates{
			ThresholdStandard:      91387,
			ThresholdFuelEfficient: 84916,
			Rate:                   0.33,
		},
		InstantWriteOffThreshold: 20000,
		FringeBenefit: FringeBenefitRates{
			Rate:          0.47,
			StatutoryRate: 0.20,
		},
		CompanyTaxRate: 0.25,
		Brackets: []Bracket{
			{Min: 0, Max: 18200, Rate: 0},
			{Min: 18200, Max: 45000, Rate: 0.19},
			{Min: 45000, Max: 120000, Rate: 0.325},
			{Min: 120000, Max: 180000, Rate: 0.37},
			{Min: 180000, Max: 0, Rate: 0.45},
		},
	}
}
