// Package cli implements the interactive command loop of the operator client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/DorLamesh/devops-web-app/internal/client/api"
	"github.com/DorLamesh/devops-web-app/internal/client/config"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

// backendClient is the slice of the API client the command loop needs.
// Declared here so tests can substitute a fake.
type backendClient interface {
	Login(ctx context.Context, username string, password []byte) error
	Signup(ctx context.Context, username, email string, password []byte, custom bool) error
	Profile(ctx context.Context) (*models.PublicUser, error)
	Users(ctx context.Context) ([]*models.PublicUser, error)
	Logout()
	HasToken() bool
}

type App struct {
	config   *config.Config
	client   backendClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	apiClient := api.NewClient(c.ServerBaseURL, c.RequestTimeout)
	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
