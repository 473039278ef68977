// cmd/client/cmd/vault/update.go
package vault

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a credential",
	Long: `Edits a stored credential. Pressing enter on a prompt keeps the
current value; the secret is only replaced when a new one is typed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		rec, err := view.BeginDialog(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Label [%s]: ", rec.Label)
		if label := readLine(); label != "" {
			rec.Label = label
		}
		fmt.Printf("Username [%s]: ", rec.Username)
		if username := readLine(); username != "" {
			rec.Username = username
		}
		fmt.Print("Secret (enter to keep): ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			view.DismissDialog()
			return fmt.Errorf("read secret: %w", err)
		}
		if len(raw) > 0 {
			rec.Secret = string(raw)
		}
		fmt.Printf("Notes [%s]: ", rec.Notes)
		if notes := readLine(); notes != "" {
			rec.Notes = notes
		}

		if err := view.ConfirmEdit(cmd.Context(), rec); err != nil {
			return fmt.Errorf("update credential: %w", err)
		}

		fmt.Println("Credential updated.")
		return nil
	},
}
