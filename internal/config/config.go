package config

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

const (
	AppName             = "clavedeoro-backend"
	LDConnectionTimeout = 5 * time.Second
)

// Config holds all application configuration. Required secrets fail fast at
// load time so a misconfigured deploy never starts serving.
type Config struct {
	AppName string
	AppPort string
	AppURL  string

	DBURL string

	SupabaseURL        string
	SupabaseServiceKey string

	SendGridAPIKey    string
	SendGridFromEmail string
	ContactInbox      string

	// Optional bootstrap identity upserted into admin_users at startup.
	BootstrapAdminID *uuid.UUID

	// Feature-flag snapshots, fetched once at startup. Defaults apply when
	// no LD_SDK_KEY is configured.
	LDFlag_CORSHighSecurity    bool
	LDFlag_SendGridSandboxMode bool
}

// LoadConfig reads the environment and returns a *Config, fataling on any
// missing required variable.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		AppName:            AppName,
		AppPort:            requireEnv("APP_PORT"),
		AppURL:             requireEnv("APP_URL"),
		DBURL:              requireEnv("DATABASE_URL"),
		SupabaseURL:        requireEnv("SUPABASE_URL"),
		SupabaseServiceKey: requireEnv("SUPABASE_SERVICE_KEY"),
		SendGridAPIKey:     requireEnv("SENDGRID_API_KEY"),
		SendGridFromEmail:  requireEnv("SENDGRID_FROM_EMAIL"),
		ContactInbox:       requireEnv("CONTACT_INBOX"),
	}

	if raw := os.Getenv("BOOTSTRAP_ADMIN_ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.Logger.Fatalf("BOOTSTRAP_ADMIN_ID is not a valid UUID: %v", err)
		}
		cfg.BootstrapAdminID = &id
	}

	loadFlagSnapshots(cfg)

	utils.Logger.Infof("Loaded config for %s", AppName)
	return cfg
}

func requireEnv(name string) string {
	v := os.Getenv(name)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", name)
	}
	return v
}

// loadFlagSnapshots fetches the static LaunchDarkly flags once. Without an
// SDK key the defaults stand and the server still boots (local dev).
func loadFlagSnapshots(cfg *Config) {
	sdkKey := os.Getenv("LD_SDK_KEY")
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; using default flag values")
		return
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.New(AppName)

	corsHighSecurity, err := ldClient.BoolVariation("cors_high_security", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurity)

	sandboxMode, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}
	utils.Logger.Debugf("sendgrid_sandbox_mode flag: %t", sandboxMode)

	cfg.LDFlag_CORSHighSecurity = corsHighSecurity
	cfg.LDFlag_SendGridSandboxMode = sandboxMode
}
