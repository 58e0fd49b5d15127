package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/ai"
	"github.com/calab/jobscout/internal/dedup"
	"github.com/calab/jobscout/internal/extract"
	"github.com/calab/jobscout/internal/jobsearch"
	"github.com/calab/jobscout/internal/profile"
)

// Searcher runs one job search across the configured sources.
type Searcher interface {
	Search(ctx context.Context, role, location string) ([]jobsearch.Listing, error)
}

// Deduper filters listings already delivered to the user.
type Deduper interface {
	Take(ctx context.Context, userID int64, listings []jobsearch.Listing, limit int) (dedup.Result, error)
}

// Deps are the collaborators the machine calls at well-defined transition
// points. All of them are injected so every transition is testable with
// doubles.
type Deps struct {
	Store       profile.Storage
	Extractor   extract.Extractor
	Analyzer    ai.Analyzer
	Searcher    Searcher
	Deduper     Deduper
	ResultLimit int
	Logger      *zap.Logger
}

// Machine is the conversation state machine. It is stateless itself: the
// caller owns the session state and passes it into Handle together with the
// inbound event.
type Machine struct {
	store     profile.Storage
	resolver  *profile.Resolver
	extractor extract.Extractor
	analyzer  ai.Analyzer
	searcher  Searcher
	deduper   Deduper
	limit     int
	logger    *zap.Logger
}

func NewMachine(deps Deps) *Machine {
	limit := deps.ResultLimit
	if limit <= 0 {
		limit = dedup.DefaultLimit
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Machine{
		store:     deps.Store,
		resolver:  profile.NewResolver(deps.Store),
		extractor: deps.Extractor,
		analyzer:  deps.Analyzer,
		searcher:  deps.Searcher,
		deduper:   deps.Deduper,
		limit:     limit,
		logger:    log,
	}
}

// Handle dispatches one event against the current state and returns the next
// state plus the effects to render. Collaborator failures never escape: they
// are logged and converted to user-facing effects here.
func (m *Machine) Handle(ctx context.Context, userID int64, st State, ev Event) (State, []Effect) {
	// Cancel wins in every state.
	if _, ok := ev.(Cancel); ok {
		return Cancelled{}, []Effect{Reply{msgCancelled}}
	}

	switch s := st.(type) {
	case Idle:
		return m.handleIdle(ctx, userID, ev)
	case ChoosingAction:
		return m.handleChoosingAction(s, ev)
	case AwaitingName:
		return m.handleAwaitingName(ctx, userID, s, ev)
	case AwaitingSurname:
		return m.handleAwaitingSurname(ctx, userID, s, ev)
	case AwaitingPhone:
		return m.handleAwaitingPhone(ctx, userID, s, ev)
	case AwaitingLocation:
		return m.handleAwaitingLocation(ctx, userID, s, ev)
	default:
		// Terminal states accept no further events.
		return st, nil
	}
}

func (m *Machine) handleIdle(ctx context.Context, userID int64, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Start:
		stored, found, err := m.store.LoadProfile(ctx, userID)
		if err != nil {
			m.logger.Error("load profile on start", zap.Int64("user_id", userID), zap.Error(err))
			return Done{}, []Effect{Reply{msgGenericFailure}}
		}

		if found && stored.Complete() {
			return ChoosingAction{Profile: stored}, []Effect{
				Reply{fmt.Sprintf(msgWelcomeBack, stored.FirstName, stored.TargetRole)},
				AskAction{Question: msgChooseAction, Options: []Action{ActionSearch, ActionNewDocument}},
			}
		}

		return Done{}, []Effect{Reply{msgWelcome}}

	case DocumentReceived:
		return m.handleDocument(ctx, userID, e.Data)

	default:
		return Idle{}, []Effect{Reply{msgSendResume}}
	}
}

// handleDocument runs the document pipeline: extract text, analyze it, merge
// the result into the stored profile, then continue with the interview or
// skip straight to the location step when the merged profile is complete.
func (m *Machine) handleDocument(ctx context.Context, userID int64, data []byte) (State, []Effect) {
	effects := []Effect{Reply{msgAnalyzing}}

	text, err := m.extractor.Extract(ctx, data)
	if err != nil {
		m.logger.Warn("document extraction failed", zap.Int64("user_id", userID), zap.Error(err))
		if errors.Is(err, extract.ErrUnreadable) {
			return Done{}, append(effects, Reply{msgUnreadableDocument})
		}
		return Done{}, append(effects, Reply{msgGenericFailure})
	}

	cv, err := m.analyzer.Analyze(ctx, text)
	if err != nil {
		m.logger.Warn("resume analysis failed", zap.Int64("user_id", userID), zap.Error(err))
		if errors.Is(err, ai.ErrNoProfile) {
			return Done{}, append(effects, Reply{msgAnalysisFailed})
		}
		return Done{}, append(effects, Reply{msgGenericFailure})
	}

	patch := profile.Patch{
		TargetRole:      cv.TargetRole,
		ExperienceLevel: cv.ExperienceLevel,
		Skills:          cv.Skills,
	}

	merged, err := m.resolver.ResolveAndSave(ctx, userID, patch)
	if err != nil {
		m.logger.Error("persist analyzed profile", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, append(effects, Reply{msgGenericFailure})
	}

	m.logger.Info("document analyzed",
		zap.Int64("user_id", userID),
		zap.String("target_role", merged.TargetRole),
		zap.Int("skills", len(merged.Skills)),
		zap.Bool("complete", merged.Complete()),
	)

	effects = append(effects, Reply{fmt.Sprintf(msgAnalysisDone, merged.TargetRole)})

	if merged.Complete() {
		return AwaitingLocation{Draft: merged}, append(effects, Reply{msgAskLocation})
	}
	return AwaitingName{Draft: merged}, append(effects, Reply{msgAskName})
}

func (m *Machine) handleChoosingAction(s ChoosingAction, ev Event) (State, []Effect) {
	choice, ok := ev.(ActionChosen)
	if !ok {
		return s, []Effect{AskAction{Question: msgChooseAction, Options: []Action{ActionSearch, ActionNewDocument}}}
	}

	switch choice.Action {
	case ActionSearch:
		return AwaitingLocation{Draft: s.Profile}, []Effect{Reply{msgAskLocation}}
	case ActionNewDocument:
		return Done{}, []Effect{Reply{msgSendResume}}
	default:
		return s, []Effect{AskAction{Question: msgChooseAction, Options: []Action{ActionSearch, ActionNewDocument}}}
	}
}

func (m *Machine) handleAwaitingName(ctx context.Context, userID int64, s AwaitingName, ev Event) (State, []Effect) {
	name, ok := textOf(ev)
	if !ok || name == "" {
		return s, []Effect{Reply{msgEmptyAnswer}}
	}

	if err := m.store.SaveProfile(ctx, userID, profile.Patch{FirstName: name}); err != nil {
		m.logger.Error("persist first name", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, []Effect{Reply{msgGenericFailure}}
	}

	draft := profile.Merge(s.Draft, profile.Patch{FirstName: name})
	return AwaitingSurname{Draft: draft}, []Effect{Reply{fmt.Sprintf(msgAskSurname, name)}}
}

func (m *Machine) handleAwaitingSurname(ctx context.Context, userID int64, s AwaitingSurname, ev Event) (State, []Effect) {
	surname, ok := textOf(ev)
	if !ok || surname == "" {
		return s, []Effect{Reply{msgEmptyAnswer}}
	}

	if err := m.store.SaveProfile(ctx, userID, profile.Patch{LastName: surname}); err != nil {
		m.logger.Error("persist last name", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, []Effect{Reply{msgGenericFailure}}
	}

	draft := profile.Merge(s.Draft, profile.Patch{LastName: surname})
	return AwaitingPhone{Draft: draft}, []Effect{Reply{msgAskPhone}}
}

func (m *Machine) handleAwaitingPhone(ctx context.Context, userID int64, s AwaitingPhone, ev Event) (State, []Effect) {
	if _, ok := ev.(SkipPhone); ok {
		return AwaitingLocation{Draft: s.Draft}, []Effect{Reply{msgPhoneSkip}, Reply{msgAskLocation}}
	}

	raw, ok := textOf(ev)
	if !ok || raw == "" {
		return s, []Effect{Reply{msgInvalidPhone}}
	}

	phone, err := profile.NormalizePhone(raw)
	if err != nil {
		// Validation failure: stay in the same state and re-prompt.
		return s, []Effect{Reply{msgInvalidPhone}}
	}

	if err := m.store.SaveProfile(ctx, userID, profile.Patch{Phone: phone}); err != nil {
		m.logger.Error("persist phone", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, []Effect{Reply{msgGenericFailure}}
	}

	draft := profile.Merge(s.Draft, profile.Patch{Phone: phone})
	return AwaitingLocation{Draft: draft}, []Effect{Reply{msgPhoneSaved}, Reply{msgAskLocation}}
}

func (m *Machine) handleAwaitingLocation(ctx context.Context, userID int64, s AwaitingLocation, ev Event) (State, []Effect) {
	location, ok := textOf(ev)
	if !ok || location == "" {
		return s, []Effect{Reply{msgAskLocation}}
	}

	role := s.Draft.TargetRole
	if role == "" {
		// The session lost its profile, most likely a restart mid-interview.
		return Done{}, []Effect{Reply{msgMissingProfile}}
	}

	effects := []Effect{Reply{fmt.Sprintf(msgSearching, role, location)}}

	listings, err := m.searcher.Search(ctx, role, location)
	if err != nil {
		m.logger.Error("job search failed", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, append(effects, Reply{msgGenericFailure})
	}

	res, err := m.deduper.Take(ctx, userID, listings, m.limit)
	if err != nil {
		m.logger.Error("dedup failed", zap.Int64("user_id", userID), zap.Error(err))
		return Done{}, append(effects, Reply{msgGenericFailure})
	}

	m.logger.Info("search finished",
		zap.Int64("user_id", userID),
		zap.String("role", role),
		zap.String("location", location),
		zap.Int("found", len(listings)),
		zap.Int("delivered", len(res.Listings)),
		zap.Bool("all_seen", res.AllSeen),
	)

	switch {
	case len(res.Listings) > 0:
		effects = append(effects, ShowListings{Intro: msgResultsIntro, Listings: res.Listings})
	case res.AllSeen:
		effects = append(effects, Reply{msgAllSeen})
	default:
		effects = append(effects, Reply{msgNoResults})
	}

	return Done{}, append(effects, Reply{msgSearchDone})
}

func textOf(ev Event) (string, bool) {
	msg, ok := ev.(TextMessage)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(msg.Text), true
}
