package bot

import "sync"

// dialogStep enumerates the states of the two-step category creation dialog.
type dialogStep int

const (
	awaitingName dialogStep = iota
	awaitingMatchText
)

// dialogSession is one user's in-flight category creation dialog.
type dialogSession struct {
	step dialogStep
	name string
}

// dialogStore keeps dialog sessions keyed by Telegram user ID. Sessions live
// in process memory only; a restart simply drops unfinished dialogs.
type dialogStore struct {
	mu       sync.Mutex
	sessions map[int64]*dialogSession
}

func newDialogStore() *dialogStore {
	return &dialogStore{sessions: make(map[int64]*dialogSession)}
}

// begin starts (or restarts) the dialog for a user at the name step.
func (d *dialogStore) begin(telegramID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[telegramID] = &dialogSession{step: awaitingName}
}

// get returns a copy of the user's session, if any.
func (d *dialogStore) get(telegramID int64) (dialogSession, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sessions[telegramID]
	if !ok {
		return dialogSession{}, false
	}
	return *s, true
}

// setName records the chosen name and advances to the trigger phrase step.
func (d *dialogStore) setName(telegramID int64, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[telegramID] = &dialogSession{step: awaitingMatchText, name: name}
}

// clear drops the user's session. Returns whether one existed.
func (d *dialogStore) clear(telegramID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.sessions[telegramID]
	delete(d.sessions, telegramID)
	return ok
}
