package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/config"
)

var envKeys = []string{
	"APP_PORT", "LOG_LEVEL", "GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"GOOGLE_SHEET_EXPENSES_ID", "GOOGLE_SHEET_HARVEST_ID", "SHEETS_CACHE_TTL",
	"REPORT_CRON_SCHEDULE", "TIMEZONE", "MONGODB_URI", "MONGODB_DB_NAME",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL",
	"WHATSAPP_API_VERSION", "WHATSAPP_DIGEST_RECIPIENT",
}

// unsetEnv clears every config variable for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t)
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/secrets/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "db-sheet")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "db-sheet", cfg.Sheets.ExpensesID)
	assert.Equal(t, "db-sheet", cfg.Sheets.HarvestID)
	assert.Equal(t, 5*time.Minute, cfg.Sheets.CacheTTL)
	assert.Equal(t, "0 20 * * 5", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Africa/Nairobi", cfg.Reporting.Timezone)
	assert.Equal(t, "anjo", cfg.MongoDB.DBName)
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Equal(t, "https://graph.facebook.com", cfg.WhatsApp.BaseURL)
}

func TestLoadFromEnvFile(t *testing.T) {
	unsetEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "GOOGLE_SHEETS_CREDENTIALS_PATH=/secrets/creds.json\n" +
		"GOOGLE_SHEET_DATABASE_ID=db-sheet\n" +
		"GOOGLE_SHEET_HARVEST_ID=harvest-sheet\n" +
		"SHEETS_CACHE_TTL=0s\n" +
		"TIMEZONE=UTC\n" +
		"MONGODB_URI=mongodb://localhost:27017\n" +
		"WHATSAPP_TOKEN=token\n" +
		"WHATSAPP_PHONE_NUMBER_ID=123\n" +
		"WHATSAPP_DIGEST_RECIPIENT=256700000000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "harvest-sheet", cfg.Sheets.HarvestID)
	assert.Equal(t, "db-sheet", cfg.Sheets.ExpensesID)
	assert.Equal(t, time.Duration(0), cfg.Sheets.CacheTTL)
	assert.True(t, cfg.MongoDB.Enabled())
	assert.True(t, cfg.WhatsApp.Enabled())

	loc, err := cfg.Reporting.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	unsetEnv(t)
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/secrets/creds.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "db-sheet")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing credentials": {"GOOGLE_SHEET_DATABASE_ID": "db"},
		"missing database":    {"GOOGLE_SHEETS_CREDENTIALS_PATH": "/c.json"},
		"bad ttl":             {"GOOGLE_SHEETS_CREDENTIALS_PATH": "/c.json", "GOOGLE_SHEET_DATABASE_ID": "db", "SHEETS_CACHE_TTL": "soon"},
		"negative ttl":        {"GOOGLE_SHEETS_CREDENTIALS_PATH": "/c.json", "GOOGLE_SHEET_DATABASE_ID": "db", "SHEETS_CACHE_TTL": "-1m"},
		"bad timezone":        {"GOOGLE_SHEETS_CREDENTIALS_PATH": "/c.json", "GOOGLE_SHEET_DATABASE_ID": "db", "TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			unsetEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestValidateWhatsAppNeedsVersion(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "8080"},
		Sheets:    config.SheetsConfig{CredentialsPath: "c", DatabaseID: "d", ExpensesID: "d", HarvestID: "d"},
		Reporting: config.ReportingConfig{CronSchedule: "@weekly", Timezone: "UTC"},
		WhatsApp:  config.WhatsAppConfig{AccessToken: "t", PhoneNumberID: "p", DigestRecipient: "r", BaseURL: "https://graph.facebook.com"},
	}
	assert.Error(t, cfg.Validate())

	cfg.WhatsApp.APIVersion = "v20.0"
	assert.NoError(t, cfg.Validate())

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}
