package accountservice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/memstore"
	"github.com/GlebRadaev/mlmledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/mlmledger/internal/service/limitservice"
	"github.com/GlebRadaev/mlmledger/internal/service/settingsservice"
	"github.com/GlebRadaev/mlmledger/internal/service/treeservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/validate"
)

const secret = "test-secret"

func NewStore(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	settings := settingsservice.New(store.Settings())
	tree := treeservice.New(store.Users(), store, 100)
	limits := limitservice.New(store.Wallets(), store.Limits(), store.Audit(), store)
	ledger := ledgerservice.New(store.Wallets(), store.Users(), store.Audit(), limits, tree, settings, store, 100)
	service := New(store.Users(), store.Wallets(), store.Audit(), ledger, settings, store, &auth.Bcrypt{Cost: bcrypt.MinCost}, auth.NewJWTService(secret))
	return service, store
}

func TestRegister(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	require.NoError(t, store.Settings().Set(ctx, domain.SettingReferralBonusAmount, "25"))
	sponsor := store.AddUser(domain.User{})

	user, err := service.Register(ctx, RegisterParams{
		Username:        "  alice ",
		Email:           "Alice@Example.COM",
		Password:        "secret-pass",
		SponsorMemberID: store.User(sponsor).MemberID,
		Position:        domain.Right,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, validate.IsMemberID(user.MemberID), user.MemberID)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.UserActive, user.Status)
	require.NotNil(t, user.SponsorID)
	require.NotNil(t, user.ParentID)
	assert.Equal(t, sponsor, *user.SponsorID)
	assert.Equal(t, sponsor, *user.ParentID)

	for _, wt := range domain.WalletTypes {
		w := store.Wallet(user.ID, wt)
		assert.NotZero(t, w.ID, wt)
		assert.True(t, w.Balance.IsZero())
	}
	assert.Equal(t, "25", store.Balance(sponsor, domain.BonusWallet).String())

	logs := store.AuditLogs()
	require.NotEmpty(t, logs)
	last := logs[len(logs)-1]
	assert.Equal(t, "USER_REGISTERED", last.Action)
	assert.Equal(t, user.ID, last.EntityID)
}

func TestRegister_WithoutSponsor(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	require.NoError(t, store.Settings().Set(ctx, domain.SettingReferralBonusAmount, "25"))

	user, err := service.Register(ctx, RegisterParams{Username: "root", Email: "root@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, user.SponsorID)
	assert.Nil(t, user.ParentID)
	assert.Equal(t, domain.Left, user.Position)
	assert.Empty(t, store.Transactions())
}

func TestRegister_MemberIDCollision(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	taken := store.User(store.AddUser(domain.User{MemberID: "79927398713"})).MemberID

	ids := []string{taken, "49927398716"}
	service.memberID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	user, err := service.Register(ctx, RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "49927398716", user.MemberID)

	service.memberID = func() string { return taken }
	_, err = service.Register(ctx, RegisterParams{Username: "carol", Email: "carol@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrDuplicateMemberID)

	u, err := store.Users().FindByLogin(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  func(store *memstore.Store, sponsor int64) RegisterParams
		wantErr error
	}{
		{
			name: "Missing password",
			params: func(_ *memstore.Store, _ int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: "bob@example.com"}
			},
			wantErr: domain.ErrInvalidRegistration,
		},
		{
			name: "Password too long",
			params: func(_ *memstore.Store, _ int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: "bob@example.com", Password: strings.Repeat("p", 80)}
			},
			wantErr: domain.ErrInvalidPassword,
		},
		{
			name: "Unknown position",
			params: func(_ *memstore.Store, _ int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw", Position: "MIDDLE"}
			},
			wantErr: domain.ErrInvalidRegistration,
		},
		{
			name: "Username taken",
			params: func(store *memstore.Store, sponsor int64) RegisterParams {
				return RegisterParams{Username: store.User(sponsor).Username, Email: "bob@example.com", Password: "pw"}
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "Email taken",
			params: func(store *memstore.Store, sponsor int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: store.User(sponsor).Email, Password: "pw"}
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "Unknown sponsor",
			params: func(_ *memstore.Store, _ int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw", SponsorMemberID: "0000000000"}
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "Unknown parent",
			params: func(store *memstore.Store, sponsor int64) RegisterParams {
				return RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw",
					SponsorMemberID: store.User(sponsor).MemberID, ParentMemberID: "0000000000"}
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "Leg already occupied",
			params: func(store *memstore.Store, sponsor int64) RegisterParams {
				child := store.AddUser(domain.User{Position: domain.Left})
				store.SetParent(child, sponsor)
				return RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw",
					SponsorMemberID: store.User(sponsor).MemberID, Position: domain.Left}
			},
			wantErr: domain.ErrPositionTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := NewStore(t)
			sponsor := store.AddUser(domain.User{})

			user, err := service.Register(context.Background(), tt.params(store, sponsor))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
			assert.Empty(t, store.AuditLogs())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, store := NewStore(t)
	ctx := context.Background()
	registered, err := service.Register(ctx, RegisterParams{Username: "carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		login    string
		password string
		prepare  func()
		wantErr  error
	}{
		{name: "By username", login: "carol", password: "pw"},
		{name: "By email", login: " carol@example.com ", password: "pw"},
		{name: "Wrong password", login: "carol", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "Unknown login", login: "dave", password: "pw", wantErr: domain.ErrInvalidCredentials},
		{
			name:     "Suspended member",
			login:    "carol",
			password: "pw",
			prepare: func() {
				require.NoError(t, store.Users().UpdateStatus(ctx, registered.ID, domain.UserSuspended))
			},
			wantErr: domain.ErrUserSuspended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepare != nil {
				tt.prepare()
			}
			user, err := service.Authenticate(ctx, tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _ := NewStore(t)

	token, err := service.GenerateToken(&domain.User{ID: 42, Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := auth.NewJWTService(secret).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)
}

func TestProfile(t *testing.T) {
	service, store := NewStore(t)
	id := store.AddUser(domain.User{Username: "erin", Email: "erin@example.com"})

	user, err := service.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "erin", user.Username)

	_, err = service.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
