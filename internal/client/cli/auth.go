package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/DorLamesh/devops-web-app/internal/client/api"
	"github.com/DorLamesh/devops-web-app/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend.
// On success the session token is held by the API client and the username
// is shown in the prompt. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, userName, password); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			log.Printf("Login unsuccessful: %s", apiErr.Message)
			return nil
		}
		return err
	}

	a.userName = userName
	log.Printf("Login successful")
	return nil
}

// Signup prompts for a username, optional email and password and creates
// a new account. Answering yes to the strict-policy question additionally
// requires a special character in the password.
func (a *App) Signup(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email (optional)", os.Stdout)
	if err != nil {
		return err
	}

	strictAnswer, err := getSimpleText(a.reader, "Require a special character in the password? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	custom := strings.EqualFold(strictAnswer, "y") || strings.EqualFold(strictAnswer, "yes")

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Signup(ctx, userName, email, password, custom); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			log.Printf("Signup unsuccessful: %s", apiErr.Message)
			return nil
		}
		return err
	}

	a.userName = userName
	fmt.Println("Success!")
	return nil
}

// Logout drops the session token and resets the prompt.
func (a *App) Logout() {
	a.client.Logout()
	a.userName = ""
}
