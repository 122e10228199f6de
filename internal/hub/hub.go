package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/session"
)

type HubMsg interface{ isHubMsg() }

// CreateSession replies nil when Code is already taken.
type CreateSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

// RemoveSession stops the session and replies whether it existed.
type RemoveSession struct {
	Code  string
	Reply chan bool
}

// ShutdownHub stops every session and the hub loop, then closes Done.
type ShutdownHub struct {
	Done chan struct{}
}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub owns the code → session registry. Every session it creates uses the
// same catalog.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	entries  []catalog.Entry
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, entries []catalog.Entry, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		entries:  entries,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if h.sessions[msg.Code] != nil {
					msg.Reply <- nil
					continue
				}
				msg.Reply <- h.ensure(msg.Code)

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // may be nil

			case EnsureSession:
				msg.Reply <- h.ensure(msg.Code)

			case RemoveSession:
				s := h.sessions[msg.Code]
				if s != nil {
					stop(s)
					delete(h.sessions, msg.Code)
					h.log.Info("session removed", zap.String("session", msg.Code))
				}
				if msg.Reply != nil {
					msg.Reply <- s != nil
				}

			case ShutdownHub:
				h.shutdown()
				if msg.Done != nil {
					close(msg.Done)
				}
				return
			}
		}
	}
}

func (h *Hub) ensure(code string) *session.Session {
	if s := h.sessions[code]; s != nil {
		return s
	}
	s := session.New(h.ctx, h.entries, h.log.With(zap.String("session", code)))
	h.sessions[code] = s
	h.log.Info("session created", zap.String("session", code))
	return s
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		stop(s)
	}
	clear(h.sessions)
	h.cancel()
}

// Get looks up a session by code; nil if absent.
func (h *Hub) Get(ctx context.Context, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(ctx, GetSession{Code: code, Reply: reply}, reply)
}

// Ensure returns the session for code, creating it if needed.
func (h *Hub) Ensure(ctx context.Context, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(ctx, EnsureSession{Code: code, Reply: reply}, reply)
}

// Create registers a new session under code. It returns nil if the code is
// already in use.
func (h *Hub) Create(ctx context.Context, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	return h.ask(ctx, CreateSession{Code: code, Reply: reply}, reply)
}

// Remove stops and forgets the session for code. It reports whether one existed.
func (h *Hub) Remove(ctx context.Context, code string) bool {
	reply := make(chan bool, 1)
	select {
	case h.inbox <- RemoveSession{Code: code, Reply: reply}:
	case <-ctx.Done():
		return false
	case <-h.ctx.Done():
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	case <-h.ctx.Done():
		return false
	}
}

// Shutdown stops every session and waits for the hub loop to exit. Calling it
// on a stopped hub is a no-op.
func (h *Hub) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case h.inbox <- ShutdownHub{Done: done}:
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-h.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ask(ctx context.Context, msg HubMsg, reply <-chan *session.Session) *session.Session {
	select {
	case h.inbox <- msg:
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-ctx.Done():
		return nil
	case <-h.ctx.Done():
		return nil
	}
}

// stop never blocks: a session whose loop already exited cannot drain its inbox.
func stop(s *session.Session) {
	select {
	case s.Inbox() <- session.Shutdown{}:
	default:
	}
}
