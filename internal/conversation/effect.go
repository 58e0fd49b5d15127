package conversation

import "github.com/calab/jobscout/internal/jobsearch"

// Effect is an outbound instruction for the delivery layer. The machine never
// talks to the user directly; it emits effects and the front end renders them.
type Effect interface {
	isEffect()
}

// Reply sends a plain text message.
type Reply struct {
	Text string
}

// AskAction presents a choice of actions.
type AskAction struct {
	Question string
	Options  []Action
}

// ShowListings presents found job listings.
type ShowListings struct {
	Intro    string
	Listings []jobsearch.Listing
}

func (Reply) isEffect()        {}
func (AskAction) isEffect()    {}
func (ShowListings) isEffect() {}
