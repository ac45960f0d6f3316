package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestBacktestLoggerSeasonEvaluated(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log, "run-1")

	backtestLogger.LogSeasonEvaluated("2023/2024", 760, 380, 52.1, 68.4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "backtest", logEntry["component"])
	assert.Equal(t, "run-1", logEntry["run_id"])
	assert.Equal(t, "2023/2024", logEntry["season"])
	assert.Equal(t, float64(380), logEntry["tested"])
}

func TestBacktestLoggerSeasonSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	NewBacktestLogger(log, "run-1").LogSeasonSkipped("2022/2023", "empty test window")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "empty test window", logEntry["reason"])
}

func TestBacktestLoggerBetPlaced(t *testing.T) {
	log, buf := setupTestLogger()
	NewBacktestLogger(log, "run-1").LogBetPlaced("E0", "Arsenal v Chelsea", "home_win", 2.1, 0.55, 7.05, 107.75, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "home_win", logEntry["market"])
	assert.Equal(t, true, logEntry["won"])
}

func TestBacktestLoggerLeagueSettled(t *testing.T) {
	log, buf := setupTestLogger()
	NewBacktestLogger(log, "run-1").LogLeagueSettled("kelly", "2023/2024", "La Liga", 112.4, 8.3, 41)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "kelly", logEntry["strategy"])
	assert.Equal(t, 112.4, logEntry["final_bankroll"])
}

func TestAnalysisLogger(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogFixtureAnalysed("soccer_epl", "Arsenal", "Chelsea", "home_win", 0.52, 1)
	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "analysis", logEntry["component"])
	assert.Equal(t, "fixture_analysed", logEntry["event_type"])

	buf.Reset()
	analysisLogger.LogReviewSummary(4, 3, 1)
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(3), logEntry["hits"])
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLoggerWithOutput("nonsense", buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestLoggerJSONFormat(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("info", buf)

	log.WithField("season", "2023/2024").Info("hello")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "hello", logEntry["msg"])
	assert.Equal(t, "2023/2024", logEntry["season"])
}
