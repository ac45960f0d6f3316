// Package config provides configuration management for the footy-value tools.
package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	footyValueName               = "footy-value"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	testAppName                  = "test-app"
	testOddsKeyVar               = "TEST_ODDS_API_KEY"
	expandedSecretValue          = "expanded_secret_value"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != footyValueName {
		t.Errorf("expected app name '%s', got '%s'", footyValueName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}
	if len(cfg.Data.Files) != 2 {
		t.Errorf("expected 2 data files, got %d", len(cfg.Data.Files))
	}
	if cfg.Backtest.HighConfidenceThreshold != 0.55 {
		t.Errorf("expected high confidence threshold 0.55, got %v", cfg.Backtest.HighConfidenceThreshold)
	}
	if cfg.Backtest.StrengthCacheTTL != 5*time.Minute {
		t.Errorf("expected strength cache ttl 5m, got %v", cfg.Backtest.StrengthCacheTTL)
	}
	if cfg.Backtest.Season != 2023 {
		t.Errorf("expected season 2023, got %d", cfg.Backtest.Season)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("FOOTY_VALUE_APP_NAME", testAppName)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadConfigExpandsPlaceholders tests ${VAR} expansion in the YAML file
func TestLoadConfigExpandsPlaceholders(t *testing.T) {
	t.Setenv(testOddsKeyVar, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.OddsAPI.APIKey != expandedSecretValue {
		t.Errorf("expected expanded api key '%s', got '%s'", expandedSecretValue, cfg.OddsAPI.APIKey)
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults apply without a file
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Backtest.InitialBankroll != 100 {
		t.Errorf("expected default bankroll 100, got %v", cfg.Backtest.InitialBankroll)
	}
	if cfg.Backtest.KellyMultiplier != 0.5 {
		t.Errorf("expected default kelly multiplier 0.5, got %v", cfg.Backtest.KellyMultiplier)
	}
	if cfg.Backtest.MinEdge != 0.05 {
		t.Errorf("expected default min edge 0.05, got %v", cfg.Backtest.MinEdge)
	}
	if cfg.Backtest.LegPolicy != "first" {
		t.Errorf("expected default leg policy 'first', got '%s'", cfg.Backtest.LegPolicy)
	}
	if cfg.Model.OutcomeMaxGoals != 5 || cfg.Model.TotalsMaxGoals != 6 {
		t.Errorf("expected default grid bounds 5/6, got %d/%d", cfg.Model.OutcomeMaxGoals, cfg.Model.TotalsMaxGoals)
	}
}

// TestScheduleSection tests the analyzer schedule and result files
func TestScheduleSection(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Schedule.AnalyzeCron != "0 10 * * *" {
		t.Errorf("expected analyze cron from file, got '%s'", cfg.Schedule.AnalyzeCron)
	}
	if cfg.Schedule.UpdateCron != "" {
		t.Errorf("expected update job disabled, got '%s'", cfg.Schedule.UpdateCron)
	}
	if cfg.Schedule.JobTimeout != 5*time.Minute {
		t.Errorf("expected job timeout 5m, got %v", cfg.Schedule.JobTimeout)
	}
	if cfg.OddsAPI.ResultFiles["soccer_spain_la_liga"] != "data/SP1_2023_2024.csv" {
		t.Errorf("unexpected result files %v", cfg.OddsAPI.ResultFiles)
	}

	defaults, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if defaults.Schedule.ReviewCron != "0 7 * * *" || defaults.Schedule.HealthPort != "8080" {
		t.Errorf("unexpected schedule defaults %+v", defaults.Schedule)
	}
	if defaults.Data.Encoding != "latin1" {
		t.Errorf("expected default encoding latin1, got '%s'", defaults.Data.Encoding)
	}

	cfg.Schedule.HealthPort = "http"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for a non-numeric health port")
	}
}

// TestLoadWithDefaultsFileOverrides tests that file values win over defaults
func TestLoadWithDefaultsFileOverrides(t *testing.T) {
	cfg, err := LoadWithDefaults(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.LogLevel != "debug" {
		t.Errorf("expected log level from file, got '%s'", cfg.App.LogLevel)
	}
	if cfg.Backtest.MinEdge != 0.05 {
		t.Errorf("expected default min edge to fill the gap, got %v", cfg.Backtest.MinEdge)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = invalidEnv
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidMarkets tests validation of unknown odds feed markets
func TestValidateInvalidMarkets(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.OddsAPI.Markets = []string{"h2h", "spreads"}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid markets")
	}
	if !strings.Contains(err.Error(), "Markets") {
		t.Errorf("expected markets validation error, got: %v", err)
	}
}

// TestValidateInvalidLegPolicy tests validation of the leg policy
func TestValidateInvalidLegPolicy(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Backtest.LegPolicy = "best"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid leg policy")
	}
}

// TestValidateThresholdRange tests the high-confidence threshold bounds
func TestValidateThresholdRange(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Backtest.HighConfidenceThreshold = 1.2
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for threshold above 1")
	}
}

// TestValidateCrossField tests cross-field rules
func TestValidateCrossField(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Backtest.FlatStake = 500
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error when flat stake exceeds bankroll")
	}

	cfg.Backtest.FlatStake = 1
	cfg.Model.TotalsMaxGoals = 2
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for a totals grid that cannot price under 2.5")
	}

	cfg.Model.TotalsMaxGoals = 6
	cfg.App.Environment = "production"
	cfg.OddsAPI.APIKey = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for production without odds api credentials")
	}
}

type fakeSecretsClient struct {
	output *secretsmanager.GetSecretValueOutput
	err    error
}

func (f fakeSecretsClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return f.output, f.err
}

// TestSecretsOverlay tests parsing and applying secrets
func TestSecretsOverlay(t *testing.T) {
	secret := `{"odds_api_key":"from-aws"}`
	client := fakeSecretsClient{output: &secretsmanager.GetSecretValueOutput{SecretString: &secret}}

	secrets, err := fetchSecrets(context.Background(), client, "footy/odds")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg := &Config{}
	overlaySecretsOnConfig(cfg, secrets)
	if cfg.OddsAPI.APIKey != "from-aws" {
		t.Errorf("expected api key from secret, got '%s'", cfg.OddsAPI.APIKey)
	}
}

// TestSecretsErrors tests failures from the secrets client
func TestSecretsErrors(t *testing.T) {
	_, err := fetchSecrets(context.Background(), fakeSecretsClient{err: errors.New("denied")}, "footy/odds")
	if err == nil {
		t.Fatal("expected error from secrets client")
	}

	_, err = fetchSecrets(context.Background(), fakeSecretsClient{output: &secretsmanager.GetSecretValueOutput{}}, "footy/odds")
	if !errors.Is(err, errNoSecretDataFound) {
		t.Fatalf("expected no secret data error, got %v", err)
	}
}

// TestLoadSecretsSkippedWithoutSecretName tests the no-op path
func TestLoadSecretsSkippedWithoutSecretName(t *testing.T) {
	cfg := &Config{}
	if err := LoadSecretsFromAWS(context.Background(), cfg); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
}
