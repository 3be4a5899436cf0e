package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "production", cfg: DefaultConfig()},
		{name: "development", cfg: DevelopmentConfig()},
		{name: "no outputs uses preset sink", cfg: Config{Level: "warn"}},
		{name: "bad level", cfg: Config{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestFromSettings(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		want        Config
	}{
		{name: "production default", want: DefaultConfig()},
		{name: "development default", development: true, want: DevelopmentConfig()},
		{
			name:  "explicit level wins",
			level: "warn",
			want:  Config{Level: "warn", OutputPaths: []string{"stdout"}},
		},
		{
			name:        "development keeps explicit level",
			level:       "error",
			development: true,
			want:        Config{Level: "error", Development: true, OutputPaths: []string{"stdout"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSettings(tt.level, tt.development))
		})
	}
}

func TestLevelIsApplied(t *testing.T) {
	logger, err := New(Config{Level: "warn"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNamed(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)

	named := logger.Named("presence")
	assert.NotSame(t, logger.Logger, named.Logger)
	assert.True(t, named.Core().Enabled(zapcore.InfoLevel))
}
