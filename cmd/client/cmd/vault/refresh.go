// cmd/client/cmd/vault/refresh.go
package vault

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var refreshGenerate bool

var RefreshCmd = &cobra.Command{
	Use:   "refresh <id>",
	Short: "Replace a credential's secret",
	Long: `Replaces the secret of a stored credential and restamps its age,
resetting the staleness indicator.

With --generate the new secret comes from the password service.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		rec, err := view.BeginDialog(args[0])
		if err != nil {
			return err
		}

		var secret string
		if refreshGenerate {
			secret, err = app.PassAPI().Generate(cmd.Context(), 0)
			if err != nil {
				view.DismissDialog()
				return fmt.Errorf("generate secret: %w", err)
			}
			fmt.Println("Secret generated.")
		} else {
			fmt.Printf("New secret for %q: ", rec.Label)
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				view.DismissDialog()
				return fmt.Errorf("read secret: %w", err)
			}
			secret = string(raw)
		}

		if err := view.ConfirmRefresh(cmd.Context(), args[0], secret); err != nil {
			return fmt.Errorf("refresh credential: %w", err)
		}

		fmt.Println("Secret refreshed.")
		return nil
	},
}

func init() {
	RefreshCmd.Flags().BoolVarP(&refreshGenerate, "generate", "g", false, "generate the new secret via the password service")
}
