package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
)

var ErrClosed = errors.New("session closed")

type Msg interface{ isSessionMsg() }

// FromClient carries a command. Done, if set, receives the applied flag and
// the snapshot after the command was processed.
type FromClient struct {
	Cmd  engine.Command
	Done chan<- Result
}

func (FromClient) isSessionMsg() {}

type Result struct {
	Applied  bool
	Snapshot Snapshot
}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   engine.Snapshot
}

type View struct {
	Version    int
	NumClients int
	State      engine.Snapshot
}

// Session owns one engine and serializes every command through its loop.
type Session struct {
	inbox   chan Msg
	engine  *engine.Engine
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, entries []catalog.Entry, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		inbox:   make(chan Msg, 64),
		engine:  engine.New(entries),
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.current()

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
				}

			case FromClient:
				applied := s.apply(msg.Cmd)
				if msg.Done != nil {
					msg.Done <- Result{Applied: applied, Snapshot: s.current()}
				}

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.engine.Snapshot(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) apply(cmd engine.Command) bool {
	events, err := s.engine.Apply(cmd)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidSelection) {
			s.log.Debug("command ignored",
				zap.String("cmd", string(cmd.Type)), zap.Int("index", cmd.Index), zap.Error(err))
		} else {
			s.log.Warn("command rejected", zap.String("cmd", string(cmd.Type)), zap.Error(err))
		}
		return false
	}
	s.version++
	if engine.ContainsEvent(events, engine.EvtSelectionReset) {
		s.log.Info("selection reset", zap.Int("version", s.version))
	}
	for _, ev := range events {
		s.log.Debug("applied",
			zap.String("event", string(ev.Type)),
			zap.Stringer("slot", ev.Slot),
			zap.Int("catalog_index", ev.CatalogIndex),
			zap.Int("version", s.version))
	}
	s.broadcast(s.current())
	return true
}

func (s *Session) current() Snapshot {
	return Snapshot{Version: s.version, State: s.engine.Snapshot()}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // no more snapshots for this client
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// slow or full client: drop it
			s.log.Info("dropping slow client", zap.String("client", id))
			close(ch)
			delete(s.clients, id)
		}
	}
}

// Inbox exposes the message channel to the transport layers.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Send delivers msg to the session loop. It fails once ctx is done or the
// session has stopped, so callers never block on a dead inbox.
func (s *Session) Send(ctx context.Context, msg Msg) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case s.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// Do sends cmd and waits for the resulting snapshot.
func (s *Session) Do(ctx context.Context, cmd engine.Command) (Result, error) {
	done := make(chan Result, 1)
	select {
	case s.inbox <- FromClient{Cmd: cmd, Done: done}:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-s.ctx.Done():
		return Result{}, ErrClosed
	}
	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-s.ctx.Done():
		return Result{}, ErrClosed
	}
}

// State returns the current view of the session.
func (s *Session) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	select {
	case s.inbox <- GetState{Reply: reply}:
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-s.ctx.Done():
		return View{}, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-s.ctx.Done():
		return View{}, ErrClosed
	}
}
