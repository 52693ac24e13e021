package statusled

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLED_Brightness(t *testing.T) {
	tmpDir := t.TempDir()
	l := New(tmpDir)

	_, err := l.GetBrightness()
	assert.Error(t, err)
	assert.NoError(t, l.SetBrightness(128))
	got, err := l.GetBrightness()
	assert.NoError(t, err)
	assert.Equal(t, 128, got)

	assert.NoError(t, l.Set(true))
	value, err := l.GetBrightness()
	require.NoError(t, err)
	assert.Equal(t, 255, value)

	assert.NoError(t, l.Set(false))
	content, err := os.ReadFile(filepath.Join(tmpDir, "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "0", string(content))
}

func TestLED_Modes(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		modes   []string
		active  string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "heartbeat",
			trigger: "none timer oneshot [heartbeat]\n",
			modes:   []string{"none", "timer", "oneshot", "heartbeat"},
			active:  "heartbeat",
			wantErr: assert.NoError,
		},
		{
			name:    "nothing active",
			trigger: "none timer mmc0",
			modes:   []string{"none", "timer", "mmc0"},
			wantErr: assert.NoError,
		},
		{
			name:    "missing",
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.trigger != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "trigger"), []byte(tt.trigger), 0644))
			}
			l := New(tmpDir)

			modes, err := l.GetModes()
			tt.wantErr(t, err)
			assert.Equal(t, tt.modes, modes)

			active, err := l.GetActiveMode()
			tt.wantErr(t, err)
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestLED_Claim(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "trigger"), []byte("none [mmc0] heartbeat"), 0644))
	l := New(tmpDir)

	require.NoError(t, l.Claim())
	content, err := os.ReadFile(filepath.Join(tmpDir, "trigger"))
	require.NoError(t, err)
	assert.Equal(t, "none", string(content))

	assert.Error(t, l.SetActiveMode("disco"))
}
