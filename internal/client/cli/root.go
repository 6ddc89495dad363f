package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) isLoggedIn() bool {
	return a.client.HasToken()
}

// Root runs the interactive command loop until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the auth service CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("authcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: profile, users, logout, exit")
			} else {
				fmt.Println("Available commands: signup, login, exit")
			}
		case "signup":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "profile":
			err = a.profile(ctx)
		case "users":
			err = a.users(ctx)
		case "logout":
			a.Logout()
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}

		if err != nil {
			log.Printf("Error: %s", err.Error())
		}
	}

}
