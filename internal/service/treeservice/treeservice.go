package treeservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

const (
	DefaultViewDepth = 3
	MaxViewDepth     = 8

	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindChildren(ctx context.Context, parentIDs []int64) ([]domain.User, error)
	FindRecentDownline(ctx context.Context, rootID int64, maxDepth, limit int) ([]domain.User, error)
	AddVolume(ctx context.Context, userID int64, leg domain.Position, bv decimal.Decimal) error
}

type Service struct {
	users     UserRepo
	txManager pg.TXManager
	maxDepth  int
}

func New(users UserRepo, txManager pg.TXManager, maxDepth int) *Service {
	if maxDepth <= 0 {
		maxDepth = 1000
	}
	return &Service{users: users, txManager: txManager, maxDepth: maxDepth}
}

// AddBinaryVolume adds bv to every placement ancestor of the origin, on the
// leg the path arrives through. The origin's own counters are untouched.
func (s *Service) AddBinaryVolume(ctx context.Context, originUserID int64, bv string) error {
	amount, err := domain.ParseAmount(bv)
	if err != nil {
		return err
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		child, err := s.users.FindByID(ctx, originUserID)
		if err != nil {
			return err
		}
		if child == nil {
			return domain.ErrUserNotFound
		}

		visited := map[int64]struct{}{child.ID: {}}
		for depth := 0; child.ParentID != nil; depth++ {
			if depth >= s.maxDepth {
				return fmt.Errorf("%w: origin %d", domain.ErrTreeTooDeep, originUserID)
			}
			parentID := *child.ParentID
			if _, seen := visited[parentID]; seen {
				return fmt.Errorf("%w: user %d reached twice", domain.ErrTreeCycle, parentID)
			}
			visited[parentID] = struct{}{}

			if err := s.users.AddVolume(ctx, parentID, child.Position, amount); err != nil {
				return err
			}
			parent, err := s.users.FindByID(ctx, parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: parent %d", domain.ErrUserNotFound, parentID)
			}
			child = parent
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to propagate binary volume",
			zap.Int64("userID", originUserID), zap.String("bv", bv), zap.Error(err))
		return err
	}
	return nil
}

// IsInDownline walks the placement tree breadth-first from ancestorID and
// reports whether candidateID is reached within maxDepth levels.
func (s *Service) IsInDownline(ctx context.Context, ancestorID, candidateID int64, maxDepth int) (bool, error) {
	if ancestorID == candidateID {
		return true, nil
	}
	level := []int64{ancestorID}
	visited := map[int64]struct{}{ancestorID: {}}
	for depth := 0; depth < maxDepth && len(level) > 0; depth++ {
		children, err := s.users.FindChildren(ctx, level)
		if err != nil {
			zap.L().Error("failed to load children", zap.Int64("ancestorID", ancestorID), zap.Error(err))
			return false, err
		}
		var next []int64
		for _, c := range children {
			if c.ID == candidateID {
				return true, nil
			}
			if _, seen := visited[c.ID]; !seen {
				visited[c.ID] = struct{}{}
				next = append(next, c.ID)
			}
		}
		level = next
	}
	return false, nil
}

// Tree returns the placement subtree under rootID, depth levels deep.
func (s *Service) Tree(ctx context.Context, rootID int64, depth int) (*domain.TreeNode, error) {
	if depth <= 0 {
		depth = DefaultViewDepth
	}
	if depth > MaxViewDepth {
		depth = MaxViewDepth
	}
	root, err := s.users.FindByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrUserNotFound
	}

	top := node(*root)
	level := map[int64]*domain.TreeNode{root.ID: top}
	for d := 0; d < depth && len(level) > 0; d++ {
		ids := make([]int64, 0, len(level))
		for id := range level {
			ids = append(ids, id)
		}
		children, err := s.users.FindChildren(ctx, ids)
		if err != nil {
			zap.L().Error("failed to load tree level", zap.Int64("rootID", rootID), zap.Int("depth", d), zap.Error(err))
			return nil, err
		}
		next := make(map[int64]*domain.TreeNode, len(children))
		for _, c := range children {
			parent, ok := level[*c.ParentID]
			if !ok {
				continue
			}
			n := node(c)
			if c.Position == domain.Right {
				parent.Right = n
			} else {
				parent.Left = n
			}
			next[c.ID] = n
		}
		level = next
	}
	return top, nil
}

// RecentDownline lists the newest members anywhere in the placement subtree
// under userID, newest first.
func (s *Service) RecentDownline(ctx context.Context, userID int64, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	root, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrUserNotFound
	}
	users, err := s.users.FindRecentDownline(ctx, userID, s.maxDepth, limit)
	if err != nil {
		zap.L().Error("failed to load recent downline", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return users, nil
}

func node(u domain.User) *domain.TreeNode {
	return &domain.TreeNode{
		ID:       u.ID,
		MemberID: u.MemberID,
		Username: u.Username,
		Position: u.Position,
		Status:   u.Status,
		LeftBV:   u.LeftBV,
		RightBV:  u.RightBV,
	}
}
