//go:build windows

package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"

	qhotkey "github.com/quickshot/quickshot/internal/hotkey"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		combo    string
		wantMods []hotkey.Modifier
		wantKey  hotkey.Key
	}{
		{"alt+print screen", []hotkey.Modifier{hotkey.ModAlt}, hotkey.Key(0x2C)},
		{"ctrl+alt+a", []hotkey.Modifier{hotkey.ModAlt, hotkey.ModCtrl}, hotkey.KeyA},
		{"ctrl+alt+q", []hotkey.Modifier{hotkey.ModAlt, hotkey.ModCtrl}, hotkey.KeyQ},
		{"f11", nil, hotkey.KeyF11},
		{"ctrl+f1", []hotkey.Modifier{hotkey.ModCtrl}, hotkey.KeyF1},
		{"shift+7", []hotkey.Modifier{hotkey.ModShift}, hotkey.Key7},
		{"win+s", []hotkey.Modifier{hotkey.ModWin}, hotkey.KeyS},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			c, err := qhotkey.ParseCombo(tt.combo)
			require.NoError(t, err)

			mods, key, err := resolve(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMods, mods)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestRegisterRejectsBadCombo(t *testing.T) {
	assert.Error(t, NewRegistrar().Register("hyper+a", func() {}))
}

func TestUnregisterAllWhenEmpty(t *testing.T) {
	assert.NoError(t, NewRegistrar().UnregisterAll())
}
