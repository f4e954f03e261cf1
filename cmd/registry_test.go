package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"buildmart.GO/core/registry"
)

func TestRegisterAndApply(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)

	Register(&cobra.Command{Use: "custom:test", Short: "test command"})
	Apply()

	found := false
	for _, c := range rootCmd.Commands() {
		if c.Use == "custom:test" {
			found = true
		}
	}
	if !found {
		t.Error("registered command not attached to root")
	}

	// Registry is locked after Apply.
	defer func() {
		if recover() == nil {
			t.Error("Register after Apply should panic")
		}
	}()
	Register(&cobra.Command{Use: "custom:late"})
}
