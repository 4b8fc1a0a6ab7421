package state

import "sync"

type Phase int

const (
	BOOTING Phase = iota
	READY
	SCRIPT
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case READY:
		return "ready"
	case SCRIPT:
		return "script"
	case ERROR:
		return "error"
	}
	return "unknown"
}

// NetworkInfo describes where the preview server can be reached.
type NetworkInfo struct {
	URL   string
	URLQR string
}

// State is what screens draw from. Version grows with every change so the
// render loop can skip frames that would look the same.
type State struct {
	Phase   Phase
	Screen  string
	Message string
	Err     string
	Network NetworkInfo
	Version uint64
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) update(fn func(*State)) {
	store.mu.Lock()
	fn(&store.state)
	store.state.Version++
	store.mu.Unlock()
}

func (store *Store) SetPhase(phase Phase) {
	store.update(func(s *State) { s.Phase = phase })
}

// SetScreen records the active screen and clears any previous error.
func (store *Store) SetScreen(name string) {
	store.update(func(s *State) {
		s.Screen = name
		s.Err = ""
	})
}

func (store *Store) SetMessage(msg string) {
	store.update(func(s *State) { s.Message = msg })
}

// SetError moves the store to ERROR, or back to READY when err is nil.
func (store *Store) SetError(err error) {
	store.update(func(s *State) {
		if err == nil {
			s.Err = ""
			if s.Phase == ERROR {
				s.Phase = READY
			}
			return
		}
		s.Err = err.Error()
		s.Phase = ERROR
	})
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.update(func(s *State) { s.Network = network })
}

// Touch bumps the version without changing anything, forcing a redraw.
func (store *Store) Touch() {
	store.update(func(*State) {})
}
