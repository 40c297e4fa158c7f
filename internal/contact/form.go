package contact

import (
	"context"
	"sync"
	"sync/atomic"
)

// Form is one contact form's state: its fields, the busy flag and the last
// notification shown.
type Form struct {
	sender Sender
	busy   atomic.Bool

	mu     sync.Mutex
	fields Message
	note   *Notification
}

func NewForm(sender Sender, fields Message) *Form {
	return &Form{sender: sender, fields: fields}
}

func (f *Form) Busy() bool { return f.busy.Load() }

func (f *Form) Fields() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Notification returns the last notification, if any.
func (f *Form) Notification() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.note == nil {
		return Notification{}, false
	}
	return *f.note, true
}

// Submit sends the fields once. On success the fields are cleared; on failure
// they are left as they were. The busy flag is set for exactly the duration of
// the send and a Submit during that window returns ErrBusy without sending.
func (f *Form) Submit(ctx context.Context) (Notification, error) {
	msg := f.Fields()
	if err := msg.Validate(); err != nil {
		f.notify(Incomplete)
		return Incomplete, err
	}

	if !f.busy.CompareAndSwap(false, true) {
		return Notification{}, ErrBusy
	}
	defer f.busy.Store(false)

	if err := f.sender.Send(ctx, msg); err != nil {
		f.notify(Failed)
		return Failed, err
	}

	f.mu.Lock()
	f.fields = Message{}
	f.mu.Unlock()
	f.notify(Sent)
	return Sent, nil
}

func (f *Form) notify(n Notification) {
	f.mu.Lock()
	f.note = &n
	f.mu.Unlock()
}
