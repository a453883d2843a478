// Package constants provides shared constants for the vehicle-decision application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Input fallbacks applied when a form value is missing or malformed.
const (
	// DefaultAnnualKm is the assumed annual distance when none is supplied
	DefaultAnnualKm = 15000.0

	// DefaultInterestRate is the assumed annual interest rate in percent
	DefaultInterestRate = 7.5

	// DefaultLoanTermYears is the assumed loan term
	DefaultLoanTermYears = 5.0

	// DefaultOwnershipYears is the assumed ownership period
	DefaultOwnershipYears = 5.0

	// MaxOwnershipYears bounds the depreciation simulation
	MaxOwnershipYears = 30

	// MaxLoanTermYears bounds the amortization term
	MaxLoanTermYears = 30

	// DefaultDepositShare is the cash share of a split purchase with no amounts entered
	DefaultDepositShare = 0.20
)

// Validation constants
const (
	// SplitTolerance is the allowed gap between cash + finance and the price
	SplitTolerance = 2.0

	// MaxPlausibleInterestRate is the upper bound of a realistic annual rate in percent
	MaxPlausibleInterestRate = 30.0

	// MaxPlausibleOwnershipYears is the upper bound of a realistic ownership period
	MaxPlausibleOwnershipYears = 15.0
)

// Cash flow constants
const (
	// ReserveSentinelMonths is reported when there are no expenses but cash remains
	ReserveSentinelMonths = 99.0
	// RatioSentinel replaces a payment to income ratio too large to represent
	RatioSentinel = 99.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default rate table file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example rate table file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of configuration keys
	EnvPrefix = "VDE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheTTLSeconds is how long cached responses stay valid
	DefaultCacheTTLSeconds = 300
)
