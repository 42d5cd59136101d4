package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"expiry-sweep", "csrf-cleanup", "psr-sync"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.NotNil(t, cmd.RunE, name)
	}
}

func TestRootCmd_TimeoutPorDefecto(t *testing.T) {
	root := newRootCmd()
	flag := root.PersistentFlags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "10m0s", flag.DefValue)
}

func TestRootCmd_RechazaArgumentos(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"expiry-sweep", "extra"})
	assert.Error(t, root.Execute())
}
