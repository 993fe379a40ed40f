package shared

import "context"

// Actor identifies the authenticated caller. It is passed explicitly into
// every service that needs role-based filtering or attribution; business
// logic never reads ambient auth state.
type Actor struct {
	ID     int64
	RoleID int64
	Name   string
}

type actorContextKey struct{}

// ContextWithActor stores the actor in context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context. The zero Actor is
// returned when no authentication middleware ran.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
