// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning its calculation specs
// into calculator inputs.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for finance-calculators.
type Configuration struct {
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
	Calculations []Calculation `yaml:"calculations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format      string `yaml:"format,omitempty"`      // pretty, csv, json
	PreviewRows int    `yaml:"previewRows,omitempty"` // schedule rows shown by the pretty format
}

// Kind names one of the calculators.
type Kind string

const (
	KindLoan        Kind = "loan"
	KindDeposit     Kind = "deposit"
	KindInvestment  Kind = "investment"
	KindEligibility Kind = "eligibility"
)

// Calculation is one named calculation to run. Exactly one of the spec
// fields is expected to be set; Kind may be omitted in that case.
type Calculation struct {
	Name        string           `yaml:"name"`
	Active      bool             `yaml:"active"`
	Kind        Kind             `yaml:"kind,omitempty"`
	Loan        *LoanSpec        `yaml:"loan,omitempty"`
	Deposit     *DepositSpec     `yaml:"deposit,omitempty"`
	Investment  *InvestmentSpec  `yaml:"investment,omitempty"`
	Eligibility *EligibilitySpec `yaml:"eligibility,omitempty"`
}

// ResolvedKind returns the calculator a calculation targets, inferring it
// from the populated spec when Kind is empty.
func (c Calculation) ResolvedKind() (Kind, error) {
	var present []Kind
	if c.Loan != nil {
		present = append(present, KindLoan)
	}
	if c.Deposit != nil {
		present = append(present, KindDeposit)
	}
	if c.Investment != nil {
		present = append(present, KindInvestment)
	}
	if c.Eligibility != nil {
		present = append(present, KindEligibility)
	}

	if c.Kind == "" {
		if len(present) != 1 {
			return "", fmt.Errorf("calculation %s: kind is required when %d specs are given", c.Name, len(present))
		}
		return present[0], nil
	}

	for _, kind := range present {
		if kind == c.Kind {
			return kind, nil
		}
	}
	switch c.Kind {
	case KindLoan, KindDeposit, KindInvestment, KindEligibility:
		return "", fmt.Errorf("calculation %s: kind %s has no %s spec", c.Name, c.Kind, c.Kind)
	}
	return "", fmt.Errorf("calculation %s: unknown kind %q", c.Name, c.Kind)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// YAML renders the configuration back into YAML, e.g. to show the effective
// configuration after defaults and overrides.
func (c *Configuration) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// ActiveCalculations returns the calculations marked active, in order.
func (c *Configuration) ActiveCalculations() []Calculation {
	var active []Calculation
	for _, calc := range c.Calculations {
		if calc.Active {
			active = append(active, calc)
		}
	}
	return active
}
