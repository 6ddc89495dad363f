package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/DorLamesh/devops-web-app/internal/client/api"
)

// profile fetches and prints the current user's record.
func (a *App) profile(ctx context.Context) error {
	user, err := a.client.Profile(ctx)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			log.Printf("Request failed: %s", apiErr.Message)
			return nil
		}
		return err
	}

	fmt.Printf("id: %d\nusername: %s\n", user.ID, user.Username)
	if user.Email != "" {
		fmt.Printf("email: %s\n", user.Email)
	}
	return nil
}

// users fetches and prints the full user list. The server only allows this
// for the admin account.
func (a *App) users(ctx context.Context) error {
	list, err := a.client.Users(ctx)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			log.Printf("Request failed: %s", apiErr.Message)
			return nil
		}
		return err
	}

	for _, u := range list {
		line := fmt.Sprintf("%d\t%s", u.ID, u.Username)
		if u.Email != "" {
			line += "\t" + u.Email
		}
		if !u.CreatedAt.IsZero() {
			line += "\t" + u.CreatedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Println(line)
	}
	fmt.Printf("%d user(s)\n", len(list))
	return nil
}
