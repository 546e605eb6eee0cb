package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/mgrizqy/ticketing-cli/apiclient"
	"github.com/mgrizqy/ticketing-cli/pages"
	"github.com/mgrizqy/ticketing-cli/session"
	"github.com/mgrizqy/ticketing-cli/simulator"
)

const usage = `usage: ticketing-cli [--api URL] <command>

commands:
  login                 sign in and store the session token
  logout                clear the stored session
  pay <txn-id>          open the payment page for a transaction
  confirm <txn-id>      open the confirmation page for a transaction
  sim                   open the dev transaction simulator
`

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", getEnv("TICKETING_API", "http://localhost:3007/api"), "base URL of the ticketing API")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	sess := session.NewFileStore(session.DefaultTokenPath())
	client := apiclient.New(*apiURL, sess)

	switch args[0] {
	case "login":
		runLogin(client)

	case "logout":
		sess.Logout()
		fmt.Println("Logged out.")

	case "pay":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		runPage(pages.NewPayment(client, args[1]))

	case "confirm":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		runConfirmation(client, args[1])

	case "sim":
		final := runPage(pages.NewSimulator(simulator.New(client, sess)))
		if m, ok := final.(pages.SimulatorModel); ok && m.ViewTransactionID() != "" {
			runConfirmation(client, m.ViewTransactionID())
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runLogin(client *apiclient.Client) {
	final := runPage(pages.NewLogin(client))
	if m, ok := final.(pages.LoginModel); ok && m.LoggedIn() {
		fmt.Println("Logged in.")
		return
	}
	fmt.Println("Login cancelled.")
}

func runConfirmation(client *apiclient.Client, txnID string) {
	final := runPage(pages.NewConfirmation(client, txnID))
	if m, ok := final.(pages.ConfirmationModel); ok && m.AuthErr() != nil {
		// missing or stale session: send the user through the login flow
		fmt.Fprintln(os.Stderr, m.AuthErr().Error())
		runLogin(client)
	}
}

func runPage(model tea.Model) tea.Model {
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		log.Fatal("page error:", err)
	}
	return final
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
