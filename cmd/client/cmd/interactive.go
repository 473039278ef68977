// cmd/client/cmd/interactive.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/app/client/flow"
	"credvault/internal/domain/credential"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run the vault as an interactive session",
	Long: `Walks through the full application flow in one terminal session:
home, account creation or sign-in, the device unlock and the vault
itself. "back" behaves like a system back gesture, including the
press-twice-to-exit confirmation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		machine := app.Flow()
		scanner := bufio.NewScanner(os.Stdin)

		for {
			printPage(machine)
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			input := strings.Fields(strings.TrimSpace(scanner.Text()))
			if len(input) == 0 {
				continue
			}

			exit, err := dispatch(cmd, machine, input)
			if err != nil {
				color.Red("%v", err)
			}
			if exit {
				return nil
			}
		}
	},
}

func printPage(machine *flow.Machine) {
	fmt.Println()
	switch machine.Page() {
	case flow.PageHome:
		fmt.Println("[home] commands: create, signin, back, quit")
	case flow.PageCreateAccount:
		fmt.Println("[create-account] commands: submit, back")
	case flow.PageSignIn:
		fmt.Println("[sign-in] commands: submit, back")
	case flow.PageLocked:
		fmt.Println("[locked] commands: unlock, back")
	case flow.PageUnlocked:
		fmt.Println("[vault] commands: list, search <q>, expand <id>, help, settings, logout, back")
	case flow.PageHelp:
		fmt.Println("[help] credvault stores credentials encrypted on this device.")
		fmt.Println("Commands: back")
	case flow.PageSettings:
		fmt.Println("[settings] commands: back")
	}
}

func dispatch(cmd *cobra.Command, machine *flow.Machine, input []string) (exit bool, err error) {
	switch input[0] {
	case "quit":
		return true, nil

	case "back":
		wasLocked := machine.Page() == flow.PageLocked
		switch machine.Back() {
		case flow.BackWarn:
			fmt.Println("Press back again to exit")
		case flow.BackExit:
			fmt.Println("Bye")
			return true, app.Logout()
		}
		if wasLocked {
			// Backing out of the lock screen is a sign-out.
			return false, app.Logout()
		}
		return false, nil

	case "create":
		return false, machine.OpenCreateAccount()

	case "signin":
		return false, machine.OpenSignIn()

	case "submit":
		return false, submitAuth(cmd, machine)

	case "unlock":
		if machine.Page() != flow.PageLocked {
			return false, fmt.Errorf("nothing to unlock here")
		}
		outcome, message, err := app.Unlock(cmd.Context())
		if err != nil {
			return false, err
		}
		switch outcome {
		case flow.UnlockFailed:
			fmt.Println("Passphrase rejected, try again")
		case flow.UnlockError:
			fmt.Printf("Unlock error, signed out: %s\n", message)
		}
		return false, nil

	case "help":
		return false, machine.OpenHelp()

	case "settings":
		return false, machine.OpenSettings()

	case "logout":
		return false, app.Logout()

	case "list":
		return false, printVault(cmd, "")

	case "search":
		if len(input) < 2 {
			return false, fmt.Errorf("usage: search <query>")
		}
		return false, printVault(cmd, strings.Join(input[1:], " "))

	case "expand":
		if len(input) != 2 {
			return false, fmt.Errorf("usage: expand <id>")
		}
		view, err := app.View()
		if err != nil {
			return false, err
		}
		if err := view.ToggleExpand(input[1]); err != nil {
			return false, err
		}
		return false, printVault(cmd, "")

	default:
		return false, fmt.Errorf("unknown command %q", input[0])
	}
}

func submitAuth(cmd *cobra.Command, machine *flow.Machine) error {
	switch machine.Page() {
	case flow.PageCreateAccount:
		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)
		password, err := readSecret("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readSecret("Confirm password: ")
		if err != nil {
			return err
		}
		return app.CreateAccount(cmd.Context(), email, password, confirm)

	case flow.PageSignIn:
		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)
		password, err := readSecret("Password: ")
		if err != nil {
			return err
		}
		return app.SignIn(cmd.Context(), email, password)

	default:
		return fmt.Errorf("nothing to submit here")
	}
}

func printVault(cmd *cobra.Command, query string) error {
	view, err := app.View()
	if err != nil {
		return err
	}

	if query != "" {
		matches := view.Search(query)
		fmt.Printf("Matched %d entries\n", matches)
	}

	records := view.Records()
	if len(records) == 0 {
		fmt.Println("The vault is empty.")
		return nil
	}
	if dropped := view.Dropped(); dropped > 0 {
		fmt.Printf("Skipped %d undecryptable entries\n", dropped)
	}

	now := time.Now()
	for _, rec := range records {
		line := fmt.Sprintf("%s  %s (%s)", rec.DocumentID, rec.Label, rec.Username)
		if query != "" && view.Highlighted(rec.DocumentID) {
			line = "* " + line
		}

		switch rec.Freshness(now) {
		case credential.Stale:
			color.Red("%s", line)
		case credential.Aging:
			color.Yellow("%s", line)
		default:
			color.Green("%s", line)
		}

		if view.ExpandedID() == rec.DocumentID {
			fmt.Printf("    secret: %s\n", rec.Secret)
			if rec.Notes != "" {
				fmt.Printf("    notes:  %s\n", rec.Notes)
			}
		}
	}
	return nil
}
