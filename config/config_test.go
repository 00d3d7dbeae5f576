package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

func setRequired(t *testing.T) {
	t.Setenv("READ_CHANNEL_ID", "123456")
	t.Setenv("READ_API_KEY", "READKEY")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123456", cfg.ReadChannelID)
	assert.Equal(t, DefaultThingSpeakURL, cfg.ThingSpeakURL)
	assert.Equal(t, DefaultSMTPServer, cfg.SMTPServer)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTPPort)
	assert.Equal(t, DefaultResultCount, cfg.ResultCount)
	assert.Equal(t, DefaultModelDir, cfg.ModelDir)
	assert.Equal(t, DefaultRunSchedule, cfg.RunSchedule)
	assert.Equal(t, types.PolicyMode, cfg.Policy)
	assert.False(t, cfg.MailEnabled())
	assert.False(t, cfg.WritebackEnabled())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("READ_CHANNEL_ID", "")
	t.Setenv("READ_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READ_CHANNEL_ID")
	assert.Contains(t, err.Error(), "READ_API_KEY")
}

func TestLoadTallyPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("AGGREGATION_POLICY", "tally")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, types.PolicyTally, cfg.Policy)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("AGGREGATION_POLICY", "median")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGGREGATION_POLICY")
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestMailEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("EMAIL_SENDER", "alerts@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("EMAIL_RECEIVER", "oncall@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MailEnabled())
}
