// devosync/supervisor.go
package devosync

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
)

// State of the supervisor's subscription bookkeeping.
type State int

const (
	// StateIdle has no live listeners.
	StateIdle State = iota
	// StateBound watches the user's membership document and one team.
	StateBound
	// StateBoundWithDay additionally watches one (devotional, day) message set.
	StateBoundWithDay
)

// binding ties a live listener to the generation it was attached under.
type binding struct {
	reg store.ListenerRegistration
	gen int64
}

func (b *binding) stop() {
	if b.reg != nil {
		b.reg.Stop()
		b.reg = nil
	}
	b.gen = 0
}

// Supervisor owns the lifecycle of the session's live subscriptions: at most
// one membership listener, one team listener, and one message listener are
// live at any instant. Every teardown happens before the next attach, and
// each attach carries a fresh generation token; callbacks tagged with a
// superseded generation are discarded, so a stale snapshot can never
// overwrite a fresher one.
//
// All state mutations are serialized onto one coordination goroutine; the
// store may deliver callbacks from arbitrary goroutines.
type Supervisor struct {
	st  store.Store
	log *logrus.Entry

	gen atomic.Int64

	mu           sync.Mutex
	state        State
	userID       string
	teamID       string
	devotionalID string
	day          int
	membership   binding
	teamBinding  binding
	messages     binding

	queue  *taskQueue
	quit   chan struct{}
	done   chan struct{}
	events chan Event

	obsMu       sync.RWMutex
	curUser     *user.User
	curTeam     *team.Team
	curMessages []devotional.Message
}

// New creates a supervisor and starts its coordination loop.
func New(st store.Store) *Supervisor {
	s := &Supervisor{
		st:     st,
		log:    logrus.WithField("component", "sync_supervisor"),
		queue:  newTaskQueue(),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		events: make(chan Event, 64),
	}
	go s.run()
	return s
}

// Events is the supervisor's typed notification stream. The channel is
// closed by Close.
func (s *Supervisor) Events() <-chan Event {
	return s.events
}

// State returns the current binding state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the last membership snapshot.
func (s *Supervisor) CurrentUser() *user.User {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	return s.curUser
}

// CurrentTeam returns the last team snapshot.
func (s *Supervisor) CurrentTeam() *team.Team {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	return s.curTeam
}

// Messages returns the last full message list for the bound day.
func (s *Supervisor) Messages() []devotional.Message {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	out := make([]devotional.Message, len(s.curMessages))
	copy(out, s.curMessages)
	return out
}

// SelectTeam rebinds the session to a team: all live listeners are torn down
// first, then the membership and team document listeners attach under fresh
// generations. Attach/detach is synchronous bookkeeping; snapshots arrive on
// the coordination loop.
func (s *Supervisor) SelectTeam(userID, teamID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownAllLocked()
	s.userID = userID
	s.teamID = teamID
	s.state = StateBound

	mgen := s.gen.Add(1)
	s.membership.gen = mgen
	s.membership.reg = s.st.ListenDocument(user.Collection(), userID, func(doc *store.Document, err error) {
		s.queue.push(func() { s.applyUser(mgen, doc, err) })
	})

	tgen := s.gen.Add(1)
	s.teamBinding.gen = tgen
	s.teamBinding.reg = s.st.ListenDocument(team.Collection(), teamID, func(doc *store.Document, err error) {
		s.queue.push(func() { s.applyTeam(tgen, doc, err) })
	})

	s.log.WithFields(logrus.Fields{"user_id": userID, "team_id": teamID}).Debug("team selected")
}

// SelectDay rebinds the message listener to one (devotional, day). Exactly
// one message listener is live afterwards; the previous one is stopped before
// the new attach.
func (s *Supervisor) SelectDay(devotionalID string, day int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle {
		s.log.Warn("select day ignored: no team bound")
		return
	}

	s.messages.stop()
	s.devotionalID = devotionalID
	s.day = day
	s.state = StateBoundWithDay

	gen := s.gen.Add(1)
	s.messages.gen = gen
	q := s.st.Query(devotional.MessagesCollection()).
		Where("devotionalId", devotionalID).
		Where("dayNumber", day)
	s.messages.reg = q.Listen(func(docs []store.Document, err error) {
		s.queue.push(func() { s.applyMessages(gen, docs, err) })
	})

	s.log.WithFields(logrus.Fields{"devotional_id": devotionalID, "day": day}).Debug("day selected")
}

// SignOut tears down every live listener and returns to Idle.
func (s *Supervisor) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownAllLocked()
	s.log.Debug("signed out; all listeners detached")
}

// Close shuts the supervisor down and closes the event stream.
func (s *Supervisor) Close() {
	s.SignOut()
	s.queue.close()
	close(s.quit)
	<-s.done
	close(s.events)
}

// teardownAllLocked stops every listener before any new attach. Stopped
// registrations deliver no further callbacks; anything already in flight is
// rejected by its superseded generation.
func (s *Supervisor) teardownAllLocked() {
	s.messages.stop()
	s.teamBinding.stop()
	s.membership.stop()
	s.state = StateIdle
	s.userID = ""
	s.teamID = ""
	s.devotionalID = ""
	s.day = 0

	s.obsMu.Lock()
	s.curUser = nil
	s.curTeam = nil
	s.curMessages = nil
	s.obsMu.Unlock()
}

// --- Coordination loop ---

func (s *Supervisor) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case <-s.queue.signal:
			for {
				t := s.queue.pop()
				if t == nil {
					break
				}
				t()
			}
		}
	}
}

func (s *Supervisor) applyUser(gen int64, doc *store.Document, err error) {
	s.mu.Lock()
	if s.membership.gen != gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("membership listener error")
		s.emit(Event{Type: EventSyncError, Err: err})
		return
	}

	u := user.FromDoc(doc)
	s.obsMu.Lock()
	s.curUser = u
	s.obsMu.Unlock()

	s.emit(Event{Type: EventMembershipChanged, User: u})
}

func (s *Supervisor) applyTeam(gen int64, doc *store.Document, err error) {
	s.mu.Lock()
	if s.teamBinding.gen != gen {
		s.mu.Unlock()
		return
	}
	teamID := s.teamID

	if err != nil {
		s.mu.Unlock()
		s.log.WithError(err).Warn("team listener error")
		s.emit(Event{Type: EventSyncError, Err: err})
		return
	}

	if doc == nil {
		// Team disappeared remotely: go idle so the orchestrating layer can
		// re-resolve the user's remaining memberships.
		s.teardownAllLocked()
		s.mu.Unlock()
		s.log.WithField("team_id", teamID).Info("bound team deleted remotely")
		s.emit(Event{Type: EventTeamDeleted, TeamID: teamID})
		return
	}
	s.mu.Unlock()

	t := team.FromDoc(doc)
	s.obsMu.Lock()
	s.curTeam = t
	s.obsMu.Unlock()

	s.emit(Event{Type: EventTeamUpdated, Team: t})
}

func (s *Supervisor) applyMessages(gen int64, docs []store.Document, err error) {
	s.mu.Lock()
	if s.messages.gen != gen {
		s.mu.Unlock()
		return
	}
	devotionalID := s.devotionalID
	day := s.day
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("message listener error")
		s.emit(Event{Type: EventSyncError, Err: err})
		return
	}

	// Each snapshot replaces the full list; there is no incremental merge.
	msgs := devotional.SortMessages(docs)
	s.obsMu.Lock()
	s.curMessages = msgs
	s.obsMu.Unlock()

	s.emit(Event{Type: EventMessagesUpdated, DevotionalID: devotionalID, Day: day, Messages: msgs})
}

// emit delivers without blocking the coordination loop; when the consumer
// lags behind the buffer, the oldest pending event is dropped in favor of the
// newer snapshot.
func (s *Supervisor) emit(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}
