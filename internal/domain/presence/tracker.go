package presence

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// State is the lifecycle state of one connection
type State int

const (
	StateUnknown State = iota
	StateUnregistered
	StateRegistered
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegistered:
		return "registered"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Tracker drives the per-connection lifecycle (open, register, disconnect)
// and keeps the Registry in step with it. The user each connection last
// registered as is kept in a side table keyed by connection handle.
type Tracker struct {
	mu       sync.Mutex
	registry *Registry
	open     map[ConnectionID]struct{} // Protected by mu
	tags     map[ConnectionID]UserID   // Protected by mu
	logger   *zap.Logger
	onChange func(registered int)
}

// NewTracker creates a tracker that mutates the given registry
func NewTracker(registry *Registry, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		registry: registry,
		open:     make(map[ConnectionID]struct{}),
		tags:     make(map[ConnectionID]UserID),
		logger:   logger,
	}
}

// OnChange installs a callback invoked with the registry size after every
// registry mutation. Must be set before the tracker is used.
func (t *Tracker) OnChange(fn func(registered int)) {
	t.onChange = fn
}

// Registry returns the registry this tracker maintains
func (t *Tracker) Registry() *Registry {
	return t.registry
}

// Open records a new connection in the Unregistered state
func (t *Tracker) Open(conn ConnectionID) {
	t.mu.Lock()
	t.open[conn] = struct{}{}
	t.mu.Unlock()

	t.logger.Info("Socket connected", zap.String("socket", string(conn)))
}

// Register binds a connection to a user. Empty users are ignored and leave
// the connection and registry untouched. Registering again overwrites the
// tag; an entry left behind by the previous user is released when it still
// belongs to this connection.
func (t *Tracker) Register(conn ConnectionID, user UserID) bool {
	if user == "" {
		return false
	}

	t.mu.Lock()
	if _, ok := t.open[conn]; !ok {
		t.mu.Unlock()
		return false
	}
	if prev, ok := t.tags[conn]; ok && prev != user {
		t.registry.RemoveIf(prev, conn)
	}
	t.tags[conn] = user
	t.registry.Set(user, conn)
	size := t.registry.Len()
	t.mu.Unlock()

	t.logger.Info("User registered",
		zap.String("user", string(user)),
		zap.String("socket", string(conn)),
	)
	t.notify(size)
	return true
}

// Disconnect closes a connection. A registered connection removes its
// user's entry; an unregistered one changes nothing. It returns the user the
// connection was registered as, if any.
func (t *Tracker) Disconnect(conn ConnectionID) (UserID, bool) {
	t.mu.Lock()
	if _, ok := t.open[conn]; !ok {
		t.mu.Unlock()
		return "", false
	}
	delete(t.open, conn)

	user, registered := t.tags[conn]
	delete(t.tags, conn)

	if registered {
		t.registry.Remove(user)
	}
	size := t.registry.Len()
	t.mu.Unlock()

	if !registered {
		t.logger.Info("User disconnected (unregistered socket)", zap.String("socket", string(conn)))
		return "", false
	}

	t.logger.Info("User disconnected",
		zap.String("user", string(user)),
		zap.String("socket", string(conn)),
	)
	t.notify(size)
	return user, true
}

// State reports the lifecycle state of a connection. Handles that were
// never opened, or that already disconnected, report StateClosed.
func (t *Tracker) State(conn ConnectionID) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.open[conn]; !ok {
		return StateClosed
	}
	if _, ok := t.tags[conn]; ok {
		return StateRegistered
	}
	return StateUnregistered
}

// UserOf returns the user a connection is registered as
func (t *Tracker) UserOf(conn ConnectionID) (UserID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	user, ok := t.tags[conn]
	return user, ok
}

func (t *Tracker) notify(size int) {
	if t.onChange != nil {
		t.onChange(size)
	}
}

// ParseUserID normalises a raw JSON register payload. Strings are used as-is
// and numbers by their shortest decimal text (1e3 is "1000"). Other truthy
// values (true, objects, arrays) are keyed by their compact JSON text.
// null, false, 0 and "" yield "", which Register ignores.
func ParseUserID(raw json.RawMessage) UserID {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return UserID(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := sonic.Unmarshal(raw, &f); err != nil || f == 0 {
			return ""
		}
		return UserID(formatNumber(f))
	case 'n', 'f':
		return ""
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return UserID(buf.String())
	}
}

// formatNumber renders f the way a JavaScript engine stringifies numbers
// inside the plain decimal range, falling back to exponent form outside it.
func formatNumber(f float64) string {
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
