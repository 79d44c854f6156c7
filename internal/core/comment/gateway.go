package comment

import "context"

// Gateway persists comments. Implementations wrap failures with ErrNetwork,
// ErrServer or ErrNotFound, usually through a *GatewayError.
type Gateway interface {
	Create(ctx context.Context, feedbackID, content string) (Comment, error)
	Update(ctx context.Context, commentID, content string) (Comment, error)
	Delete(ctx context.Context, commentID string) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Ask(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Ask(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// ActorSource yields the current actor. ok is false when nobody is signed in.
type ActorSource interface {
	Actor() (actor Actor, ok bool)
}

// StaticActor is an ActorSource that always returns the same actor.
type StaticActor Actor

func (s StaticActor) Actor() (Actor, bool) {
	return Actor(s), s.ID != ""
}

// Directory resolves author ids to display names at render time.
type Directory interface {
	DisplayName(userID string) (string, bool)
}

// Names is a map backed Directory.
type Names map[string]string

func (n Names) DisplayName(userID string) (string, bool) {
	name, ok := n[userID]
	return name, ok && name != ""
}
