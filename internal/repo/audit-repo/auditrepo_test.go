package auditrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

func TestRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := New(mock)

	adminID := int64(1)
	entry := &domain.AuditLog{
		ActorID:   &adminID,
		ActorType: domain.ActorAdmin,
		Action:    "USER_SUSPEND",
		Entity:    "User",
		EntityID:  5,
		Before:    domain.Meta{"status": "ACTIVE"},
		After:     domain.Meta{"status": "SUSPENDED"},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_logs`)).
		WithArgs(&adminID, domain.ActorAdmin, "USER_SUSPEND", "User", int64(5), entry.Before, entry.After).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.Insert(context.Background(), entry))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_logs`)).
		WithArgs(&adminID, domain.ActorAdmin, "USER_SUSPEND", "User", int64(5), entry.Before, entry.After).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Insert(context.Background(), entry))
}
