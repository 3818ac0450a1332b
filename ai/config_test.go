package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.PrimaryAPIKey)
	assert.NotEmpty(t, cfg.PrimaryModels)
	assert.Equal(t, "gpt-4o-mini", cfg.SecondaryModel)
	assert.Equal(t, 14000, cfg.TextBudget)
	assert.Equal(t, 50, cfg.MinTextLength)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, 14000, cfg.TextBudget)
	})

	t.Run("with options", func(t *testing.T) {
		cfg := NewConfig(
			WithPrimaryAPIKey("pk"),
			WithPrimaryModels("model-a", "model-b"),
			WithSecondaryAPIKey("sk"),
			WithSecondaryModel("small-model"),
			WithTextBudget(5000),
			WithMinTextLength(10),
		)

		assert.Equal(t, "pk", cfg.PrimaryAPIKey)
		assert.Equal(t, []string{"model-a", "model-b"}, cfg.PrimaryModels)
		assert.Equal(t, "sk", cfg.SecondaryAPIKey)
		assert.Equal(t, "small-model", cfg.SecondaryModel)
		assert.Equal(t, 5000, cfg.TextBudget)
		assert.Equal(t, 10, cfg.MinTextLength)
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(WithSecondaryHost("http://localhost:11434"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.SecondaryHost)

	// Already normalized hosts are untouched.
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.SecondaryHost)
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("primary key without models", func(t *testing.T) {
		cfg := NewConfig(WithPrimaryAPIKey("pk"), WithPrimaryModels())
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing secondary model", func(t *testing.T) {
		cfg := NewConfig(WithSecondaryModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive budget", func(t *testing.T) {
		cfg := NewConfig(WithTextBudget(0))
		assert.Error(t, cfg.Validate())
	})
}

func TestNewDocument_MIMEDetection(t *testing.T) {
	assert.Equal(t, MIMEPDF, NewDocument("notes.PDF", nil).MIMEType)
	assert.Equal(t, MIMEDocx, NewDocument("notes.docx", nil).MIMEType)
	assert.Equal(t, "application/octet-stream", NewDocument("notes.txt", nil).MIMEType)

	assert.True(t, NewDocument("a.pdf", nil).PrimarySupported())
	assert.False(t, NewDocument("a.docx", nil).PrimarySupported())
}
