package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	defer r.s.lock(ctx)()
	st := r.s.state
	for _, other := range st.users {
		if other.MemberID == u.MemberID {
			return nil, domain.ErrDuplicateMemberID
		}
		if other.Username == u.Username || other.Email == u.Email {
			return nil, domain.ErrUserExists
		}
		if u.ParentID != nil && other.ParentID != nil && *other.ParentID == *u.ParentID && other.Position == u.Position {
			return nil, domain.ErrPositionTaken
		}
	}
	created := *u
	created.ID = st.nextID()
	created.CreatedAt = r.s.Now()
	if created.Role == "" {
		created.Role = domain.RoleUser
	}
	if created.Status == "" {
		created.Status = domain.UserActive
	}
	if created.Position == "" {
		created.Position = domain.Left
	}
	st.users[created.ID] = created
	return &created, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.FindByID(ctx, id)
}

func (r *UserRepo) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	defer r.s.lock(ctx)()
	for _, id := range sortedKeys(r.s.state.users) {
		if u := r.s.state.users[id]; match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByMemberID(ctx context.Context, memberID string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.MemberID == memberID })
}

func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Username == login || u.Email == login })
}

func (r *UserRepo) FindChildren(ctx context.Context, parentIDs []int64) ([]domain.User, error) {
	defer r.s.lock(ctx)()
	parents := make(map[int64]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}
	var children []domain.User
	for _, id := range sortedKeys(r.s.state.users) {
		u := r.s.state.users[id]
		if u.ParentID == nil {
			continue
		}
		if _, ok := parents[*u.ParentID]; ok {
			children = append(children, u)
		}
	}
	return children, nil
}

func (r *UserRepo) FindRecentDownline(ctx context.Context, rootID int64, maxDepth, limit int) ([]domain.User, error) {
	defer r.s.lock(ctx)()
	children := make(map[int64][]int64)
	for _, id := range sortedKeys(r.s.state.users) {
		if p := r.s.state.users[id].ParentID; p != nil {
			children[*p] = append(children[*p], id)
		}
	}
	var found []domain.User
	seen := map[int64]bool{rootID: true}
	level := []int64{rootID}
	for depth := 0; depth < maxDepth && len(level) > 0; depth++ {
		var next []int64
		for _, id := range level {
			for _, c := range children[id] {
				if !seen[c] {
					seen[c] = true
					found = append(found, r.s.state.users[c])
					next = append(next, c)
				}
			}
		}
		level = next
	}
	sort.Slice(found, func(i, j int) bool {
		if !found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].CreatedAt.After(found[j].CreatedAt)
		}
		return found[i].ID > found[j].ID
	})
	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *UserRepo) FindWithVolume(ctx context.Context) ([]domain.User, error) {
	defer r.s.lock(ctx)()
	var users []domain.User
	for _, id := range sortedKeys(r.s.state.users) {
		u := r.s.state.users[id]
		if u.LeftBV.IsPositive() && u.RightBV.IsPositive() {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepo) update(ctx context.Context, id int64, fn func(u *domain.User) error) error {
	defer r.s.lock(ctx)()
	u, ok := r.s.state.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	r.s.state.users[id] = u
	return nil
}

func (r *UserRepo) AddVolume(ctx context.Context, userID int64, leg domain.Position, bv decimal.Decimal) error {
	return r.update(ctx, userID, func(u *domain.User) error {
		switch leg {
		case domain.Left:
			u.LeftBV = u.LeftBV.Add(bv)
		case domain.Right:
			u.RightBV = u.RightBV.Add(bv)
		default:
			return fmt.Errorf("unknown leg %q", leg)
		}
		return nil
	})
}

func (r *UserRepo) SetVolumes(ctx context.Context, userID int64, left, right decimal.Decimal) error {
	if left.IsNegative() || right.IsNegative() {
		return fmt.Errorf("negative volume for user %d", userID)
	}
	return r.update(ctx, userID, func(u *domain.User) error {
		u.LeftBV, u.RightBV = left, right
		return nil
	})
}

func (r *UserRepo) UpdateStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	return r.update(ctx, userID, func(u *domain.User) error {
		u.Status = status
		return nil
	})
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.update(ctx, userID, func(u *domain.User) error {
		u.PasswordHash = hash
		return nil
	})
}

func (r *UserRepo) SetWithdrawalRestricted(ctx context.Context, userID int64, restricted bool) error {
	return r.update(ctx, userID, func(u *domain.User) error {
		u.IsWithdrawalRestricted = restricted
		return nil
	})
}

func (r *UserRepo) AdjustActivePackages(ctx context.Context, userID int64, delta int) error {
	return r.update(ctx, userID, func(u *domain.User) error {
		u.ActivePackageCount += delta
		if u.ActivePackageCount < 0 {
			u.ActivePackageCount = 0
		}
		return nil
	})
}
