package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const columns = `id, member_id, username, email, password_hash, role, parent_id, sponsor_id, position,
        left_bv, right_bv, status, is_withdrawal_restricted, active_package_count, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.MemberID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.ParentID, &u.SponsorID,
		&u.Position, &u.LeftBV, &u.RightBV, &u.Status, &u.IsWithdrawalRestricted, &u.ActivePackageCount, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) findOne(ctx context.Context, op, query string, args ...any) (*domain.User, error) {
	u, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to "+op, zap.Error(err))
		return nil, err
	}
	return u, nil
}

// Create inserts a user. A taken member id yields ErrDuplicateMemberID
// without aborting the surrounding transaction.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (member_id, username, email, password_hash, role, parent_id, sponsor_id, position, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (member_id) DO NOTHING
        RETURNING ` + columns
	created, err := scan(r.db.QueryRow(ctx, query, user.MemberID, user.Username, user.Email, user.PasswordHash,
		user.Role, user.ParentID, user.SponsorID, user.Position, user.Status))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrDuplicateMemberID
		case pg.IsUniqueViolation(err, "users_parent_position_key"):
			return nil, domain.ErrPositionTaken
		case pg.IsUniqueViolation(err, ""):
			return nil, domain.ErrUserExists
		}
		zap.L().Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, "find user by id", query, id)
}

func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, "lock user", query, id)
}

func (r *Repository) FindByMemberID(ctx context.Context, memberID string) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE member_id = $1`
	return r.findOne(ctx, "find user by member id", query, memberID)
}

func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE username = $1 OR email = $1`
	return r.findOne(ctx, "find user by login", query, login)
}

func (r *Repository) list(ctx context.Context, op, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to "+op, zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			zap.L().Error("failed to scan user", zap.Error(err))
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// FindChildren returns the direct placement children of every given parent.
func (r *Repository) FindChildren(ctx context.Context, parentIDs []int64) ([]domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE parent_id = ANY($1) ORDER BY id`
	return r.list(ctx, "find children", query, parentIDs)
}

// FindRecentDownline returns the newest members placed under rootID, at most
// maxDepth levels down.
func (r *Repository) FindRecentDownline(ctx context.Context, rootID int64, maxDepth, limit int) ([]domain.User, error) {
	query := `
        WITH RECURSIVE downline AS (
            SELECT id, 1 AS depth FROM users WHERE parent_id = $1
            UNION
            SELECT u.id, d.depth + 1 FROM users u JOIN downline d ON u.parent_id = d.id WHERE d.depth < $2
        )
        SELECT ` + columns + ` FROM users
        WHERE id IN (SELECT id FROM downline)
        ORDER BY created_at DESC, id DESC
        LIMIT $3`
	return r.list(ctx, "find recent downline", query, rootID, maxDepth, limit)
}

// FindWithVolume lists users with carry-forward volume on both legs.
func (r *Repository) FindWithVolume(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE left_bv > 0 AND right_bv > 0 ORDER BY id`
	return r.list(ctx, "find users with volume", query)
}

func (r *Repository) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to "+op, zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *Repository) AddVolume(ctx context.Context, userID int64, leg domain.Position, bv decimal.Decimal) error {
	var query string
	switch leg {
	case domain.Left:
		query = `UPDATE users SET left_bv = left_bv + $2 WHERE id = $1`
	case domain.Right:
		query = `UPDATE users SET right_bv = right_bv + $2 WHERE id = $1`
	default:
		return fmt.Errorf("unknown leg %q", leg)
	}
	return r.exec(ctx, "add volume", query, userID, bv)
}

func (r *Repository) SetVolumes(ctx context.Context, userID int64, left, right decimal.Decimal) error {
	query := `UPDATE users SET left_bv = $2, right_bv = $3 WHERE id = $1`
	return r.exec(ctx, "set volumes", query, userID, left, right)
}

func (r *Repository) UpdateStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	query := `UPDATE users SET status = $2 WHERE id = $1`
	return r.exec(ctx, "update user status", query, userID, status)
}

func (r *Repository) SetWithdrawalRestricted(ctx context.Context, userID int64, restricted bool) error {
	query := `UPDATE users SET is_withdrawal_restricted = $2 WHERE id = $1`
	return r.exec(ctx, "set withdrawal restriction", query, userID, restricted)
}

func (r *Repository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`
	return r.exec(ctx, "update password", query, userID, hash)
}

func (r *Repository) AdjustActivePackages(ctx context.Context, userID int64, delta int) error {
	query := `UPDATE users SET active_package_count = GREATEST(active_package_count + $2, 0) WHERE id = $1`
	return r.exec(ctx, "adjust active packages", query, userID, delta)
}
