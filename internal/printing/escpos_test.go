package printing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice(t *testing.T) *USBDevice {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return NewUSBDevice(path)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	device := newTestDevice(t)

	session, err := device.Open()
	require.NoError(t, err)

	assert.NoError(t, session.Close())
	assert.NoError(t, session.Close())

	// the device is free again after the double close
	second, err := device.Open()
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestDeviceFreedWhenRenderingPanics(t *testing.T) {
	device := newTestDevice(t)

	func() {
		defer func() { recover() }()
		session, err := device.Open()
		require.NoError(t, err)
		defer session.Close()
		session.Line("Doener Nr.3")
		panic("boom")
	}()

	opened := make(chan Session, 1)
	go func() {
		session, err := device.Open()
		if err != nil {
			t.Error(err)
			return
		}
		opened <- session
	}()

	select {
	case session := <-opened:
		assert.NoError(t, session.Close())
	case <-time.After(time.Second):
		t.Fatal("printer device still locked after panic")
	}
}
