package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// Defaults for everything that is not a credential. SMTP defaults match the
// account the channel has always alerted from.
const (
	DefaultThingSpeakURL = "https://api.thingspeak.com"
	DefaultSMTPServer    = "smtp.gmail.com"
	DefaultSMTPPort      = 587
	DefaultModelDir      = "model_files"
	DefaultResultCount   = 20
	DefaultRunSchedule   = "*/15 * * * *"
	DefaultListenAddr    = ":8080"
)

// Config carries every externally supplied identifier and credential the
// collaborators need. It is built once at startup and passed by reference;
// nothing in the pipeline reads the environment after Load returns.
type Config struct {
	// ThingSpeak channel access
	ThingSpeakURL string
	ReadChannelID string
	ReadAPIKey    string
	WriteAPIKey   string
	ResultCount   int

	// Pipeline behavior
	ModelDir    string
	Policy      types.Policy
	RunSchedule string

	// Mail dispatch
	SMTPServer    string
	SMTPPort      int
	EmailSender   string
	EmailPassword string
	EmailReceiver string

	// Optional collaborators
	OpenAIKey           string
	FirebaseCredentials string

	// HTTP surface
	ListenAddr string
}

// Load collects the configuration from the process environment. It fails when
// the read-channel credentials are missing; everything else falls back to a
// default or leaves its collaborator disabled.
func Load() (*Config, error) {
	cfg := &Config{
		ThingSpeakURL:       getEnv("THINGSPEAK_URL", DefaultThingSpeakURL),
		ReadChannelID:       os.Getenv("READ_CHANNEL_ID"),
		ReadAPIKey:          os.Getenv("READ_API_KEY"),
		WriteAPIKey:         os.Getenv("PREDICTION_WRITE_API_KEY"),
		ModelDir:            getEnv("MODEL_DIR", DefaultModelDir),
		RunSchedule:         getEnv("RUN_SCHEDULE", DefaultRunSchedule),
		SMTPServer:          getEnv("SMTP_SERVER", DefaultSMTPServer),
		EmailSender:         os.Getenv("EMAIL_SENDER"),
		EmailPassword:       os.Getenv("EMAIL_PASSWORD"),
		EmailReceiver:       os.Getenv("EMAIL_RECEIVER"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		ListenAddr:          getEnv("LISTEN_ADDR", DefaultListenAddr),
	}

	var missing []string
	if cfg.ReadChannelID == "" {
		missing = append(missing, "READ_CHANNEL_ID")
	}
	if cfg.ReadAPIKey == "" {
		missing = append(missing, "READ_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", DefaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.ResultCount, err = getEnvInt("RESULT_COUNT", DefaultResultCount); err != nil {
		return nil, err
	}
	if cfg.ResultCount < 1 {
		return nil, fmt.Errorf("RESULT_COUNT must be at least 1, got %d", cfg.ResultCount)
	}

	switch p := types.Policy(getEnv("AGGREGATION_POLICY", string(types.PolicyMode))); p {
	case types.PolicyMode, types.PolicyTally:
		cfg.Policy = p
	default:
		return nil, fmt.Errorf("AGGREGATION_POLICY must be %q or %q, got %q", types.PolicyMode, types.PolicyTally, p)
	}

	return cfg, nil
}

// MailEnabled reports whether the mail collaborator has enough credentials to
// dispatch notifications.
func (c *Config) MailEnabled() bool {
	return c.EmailSender != "" && c.EmailPassword != "" && c.EmailReceiver != ""
}

// WritebackEnabled reports whether prediction writeback is configured.
func (c *Config) WritebackEnabled() bool {
	return c.WriteAPIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, val)
	}
	return n, nil
}
