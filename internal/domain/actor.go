package domain

import "context"

type ActorType string

const (
	ActorSystem ActorType = "SYSTEM"
	ActorUser   ActorType = "USER"
	ActorAdmin  ActorType = "ADMIN"
)

type Actor struct {
	ID   *int64
	Type ActorType
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx, or the system actor.
func ActorFrom(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return Actor{Type: ActorSystem}
}

// NewAuditLog builds an audit entry attributed to the actor in ctx.
func NewAuditLog(ctx context.Context, action, entity string, entityID int64, before, after Meta) *AuditLog {
	a := ActorFrom(ctx)
	return &AuditLog{
		ActorID:   a.ID,
		ActorType: a.Type,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Before:    before,
		After:     after,
	}
}
