package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jungmin-dev/coffee-order-backend/internal/models"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
)

type usersRepo struct{ db querier }

const userCols = `user_id, user_name, point, version, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.UserName, &u.Point, &u.Version, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users(user_id, user_name, point, version, password_hash)
		 VALUES($1, $2, $3, 0, $4)
		 RETURNING `+userCols,
		u.UserID, u.UserName, u.Point, u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, repo.ErrDuplicate
		}
		return models.User{}, err
	}
	return created, nil
}

func (r *usersRepo) Get(ctx context.Context, userID string) (models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE user_id=$1`, userID))
}

func (r *usersRepo) AddPoint(ctx context.Context, userID string, amount int64) (models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users
		    SET point = point + $2,
		        version = version + 1,
		        updated_at = now()
		  WHERE user_id = $1
		  RETURNING `+userCols,
		userID, amount,
	))
}

// DeductPoint is the optimistic write: the version predicate makes the
// check-then-act race lose exactly one of two concurrent writers.
func (r *usersRepo) DeductPoint(ctx context.Context, userID string, amount int64, expectedVersion int64) (models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users
		    SET point = point - $2,
		        version = version + 1,
		        updated_at = now()
		  WHERE user_id = $1 AND version = $3
		  RETURNING `+userCols,
		userID, amount, expectedVersion,
	))
	if errors.Is(err, repo.ErrNotFound) {
		// No row matched: either the user is gone or the version moved.
		var exists bool
		if exErr := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE user_id=$1)`, userID,
		).Scan(&exists); exErr != nil {
			return models.User{}, exErr
		}
		if exists {
			return models.User{}, repo.ErrVersionConflict
		}
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}
