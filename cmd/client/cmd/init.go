// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/auth"
	"credvault/cmd/client/cmd/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the device passphrase",
	Long: `init enrolls the device passphrase that locks the vault on this
device. Every launch must pass this check before any credential is
shown, even when an account session is still valid.

The passphrase never leaves this device and is independent of the
account password.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if app.DeviceLockEnrolled() {
			fmt.Println("Device passphrase is already set.")
			return nil
		}

		fmt.Println("=== credvault setup ===")
		fmt.Println()

		passphrase, err := readSecret("Choose a device passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readSecret("Repeat the passphrase: ")
		if err != nil {
			return err
		}

		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}
		if len(passphrase) < 8 {
			return fmt.Errorf("passphrase must be at least 8 characters")
		}

		if err := app.EnrollDeviceLock(passphrase); err != nil {
			return fmt.Errorf("enroll device passphrase: %w", err)
		}

		fmt.Println("Checking server connection...")
		if err := app.CheckConnection(); err != nil {
			fmt.Printf("Warning: server unreachable: %v\n", err)
		} else {
			fmt.Println("Server connection OK")
		}

		fmt.Println()
		fmt.Println("Setup complete.")
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("1. Create an account:  credvault auth register")
		fmt.Println("2. Or sign in:         credvault auth login")
		fmt.Println("3. Open the vault:     credvault vault list")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(interactiveCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(vault.VaultCmd)
	vault.VaultCmd.AddCommand(vault.ListCmd)
	vault.VaultCmd.AddCommand(vault.AddCmd)
	vault.VaultCmd.AddCommand(vault.UpdateCmd)
	vault.VaultCmd.AddCommand(vault.DeleteCmd)
	vault.VaultCmd.AddCommand(vault.RefreshCmd)
	vault.VaultCmd.AddCommand(vault.ScanCmd)
	vault.VaultCmd.AddCommand(vault.GenerateCmd)
	vault.VaultCmd.AddCommand(vault.CheckCmd)
}
