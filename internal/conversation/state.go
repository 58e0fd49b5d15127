// Package conversation drives the multi-turn interview that turns a résumé
// into a stored profile and a deduplicated set of job listings.
package conversation

import "github.com/calab/jobscout/internal/profile"

// State is a tagged session state. Each variant carries only the data that
// state needs; there is no shared mutable session dictionary.
type State interface {
	isState()
}

// Idle is the implicit start: no conversation in progress.
type Idle struct{}

// ChoosingAction is presented to a returning user with a complete profile.
type ChoosingAction struct {
	Profile profile.Profile
}

// AwaitingName waits for the user's first name.
type AwaitingName struct {
	Draft profile.Profile
}

// AwaitingSurname waits for the user's last name.
type AwaitingSurname struct {
	Draft profile.Profile
}

// AwaitingPhone waits for a phone number or an explicit skip.
type AwaitingPhone struct {
	Draft profile.Profile
}

// AwaitingLocation waits for the location to search in.
type AwaitingLocation struct {
	Draft profile.Profile
}

// Done is the terminal state of a finished conversation.
type Done struct{}

// Cancelled is the terminal state of an explicitly cancelled conversation.
type Cancelled struct{}

func (Idle) isState()             {}
func (ChoosingAction) isState()   {}
func (AwaitingName) isState()     {}
func (AwaitingSurname) isState()  {}
func (AwaitingPhone) isState()    {}
func (AwaitingLocation) isState() {}
func (Done) isState()             {}
func (Cancelled) isState()        {}

// Terminal reports whether the state ends the session.
func Terminal(s State) bool {
	switch s.(type) {
	case Done, Cancelled:
		return true
	}
	return false
}
