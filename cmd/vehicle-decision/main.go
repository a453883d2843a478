package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/vehicle-decision/internal/config"
	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/internal/inputfile"
	"github.com/iwvelando/vehicle-decision/internal/logging"
	"github.com/iwvelando/vehicle-decision/internal/scenario"
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/output"
	"github.com/iwvelando/vehicle-decision/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// errInvalidInputs marks a run whose inputs carried validation errors.
var errInvalidInputs = errors.New("inputs failed validation")

func main() {
	// A missing .env is normal; values then come from the real environment.
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errInvalidInputs) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("vehicle-decision", flag.ContinueOnError)
	inputsLocation := flags.String("inputs", "", "path to the purchase inputs (YAML or JSON)")
	configLocation := flags.String("config", "", "path to a rate table configuration file (default "+constants.DefaultConfigFile+" when present)")
	withScenarios := flags.Bool("scenarios", false, "also evaluate the what-if scenarios")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *inputsLocation == "" {
		return errors.New("the -inputs flag is required")
	}

	if *configLocation == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			*configLocation = constants.DefaultConfigFile
		}
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", *configLocation, err)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputFormat = strings.ToLower(outputFormat)
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	inputs, err := inputfile.Load(*inputsLocation)
	if err != nil {
		return err
	}

	eng := engine.New(logger, conf)

	var reports []output.Report
	var issues []engine.ValidationIssue
	if *withScenarios {
		results := scenario.New(logger, eng).Generate(inputs)
		issues = results[0].Issues
		reports = output.FromScenarios(results)
	} else {
		outcome := eng.Run(inputs)
		issues = outcome.Issues
		reports = []output.Report{output.FromOutcome(reportName(inputs), outcome)}
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(stdout, reports)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(stdout, reports)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(stdout, reports)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", outputFormat, err)
	}

	if engine.HasErrors(issues) {
		logger.Warn("inputs have validation errors; results use fallback values",
			zap.String("op", "main"),
			zap.Int("issues", len(issues)),
		)
		return errInvalidInputs
	}
	return nil
}

func reportName(in *engine.VehicleInputs) string {
	if name := strings.TrimSpace(in.DecisionName); name != "" {
		return name
	}
	return "current"
}
