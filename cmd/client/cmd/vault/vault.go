package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
	"credvault/internal/app/client/flow"
	"credvault/internal/app/client/vaultview"
)

// VaultCmd is the parent command for credential operations.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Credential operations",
	Long:  `List, add, update, refresh and delete vault credentials.`,
}

// openVault runs the device-unlock gate and returns the vault view.
// Every vault subcommand funnels through here, so no credential is ever
// shown without both an account session and a passed device check.
func openVault(cmd *cobra.Command) (*client.App, *vaultview.View, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok {
		return nil, nil, fmt.Errorf("application not initialized")
	}

	machine := app.Flow()
	if !machine.Authenticated() {
		return nil, nil, fmt.Errorf("not signed in; run: credvault auth login")
	}

	if !machine.Unlocked() {
		outcome, message, err := app.Unlock(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		switch outcome {
		case flow.UnlockFailed:
			return nil, nil, fmt.Errorf("device passphrase rejected")
		case flow.UnlockError:
			return nil, nil, fmt.Errorf("device unlock error, signed out: %s", message)
		}
	}

	view, err := app.View()
	if err != nil {
		return nil, nil, err
	}
	return app, view, nil
}
