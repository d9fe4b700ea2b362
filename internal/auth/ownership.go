package auth

import "errors"

// ErrNotOwner is returned when an actor attempts to mutate a resource it
// does not own.
var ErrNotOwner = errors.New("actor is not the resource owner")

// Owned is a resource carrying an owner recorded at creation time.
type Owned interface {
	Owner() string
}

// AuthorizeOwner allows a mutation only when the actor is the recorded owner.
// Callers must load the current resource state first and surface their own
// not-found error for missing resources; ownership cannot be checked against
// a resource that does not exist.
func AuthorizeOwner(res Owned, actorID string) error {
	if res.Owner() != actorID {
		return ErrNotOwner
	}
	return nil
}
