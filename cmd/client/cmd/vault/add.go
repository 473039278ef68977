// cmd/client/cmd/vault/add.go
package vault

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"credvault/internal/domain/credential"
)

var addGenerate bool

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a credential",
	Long: `Adds a credential to the vault. The secret is encrypted on this
device before it is sent anywhere.

With --generate the secret is produced by the password service instead
of being typed in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, view, err := openVault(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Label: ")
		label := readLine()
		fmt.Print("Username: ")
		username := readLine()

		var secret string
		if addGenerate {
			secret, err = app.PassAPI().Generate(cmd.Context(), 0)
			if err != nil {
				return fmt.Errorf("generate secret: %w", err)
			}
			fmt.Println("Secret generated.")
		} else {
			fmt.Print("Secret: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("read secret: %w", err)
			}
			fmt.Println()
			secret = string(raw)
		}

		fmt.Print("Notes: ")
		notes := readLine()

		if err := view.Add(cmd.Context(), credential.New(label, username, secret, notes)); err != nil {
			return fmt.Errorf("add credential: %w", err)
		}

		fmt.Println("Credential saved.")
		return nil
	},
}

var stdin = bufio.NewReader(os.Stdin)

// readLine reads one full input line, spaces included.
func readLine() string {
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	AddCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "generate the secret via the password service")
}
