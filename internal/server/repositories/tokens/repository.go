package tokens

import "context"

type Repository interface {
	Create(ctx context.Context, token string, userID int64) error
}
