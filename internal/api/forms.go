package api

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/patrickmn/go-cache"

	"gym-activity-backend/internal/attendance"
)

// DefaultFormTTL is how long an untouched check-in form is kept.
const DefaultFormTTL = 30 * time.Minute

// CheckInForm is one open check-in dialog and the equipment toggled on in it.
type CheckInForm struct {
	ID        string
	Selection *attendance.Selection
}

// FormRegistry keeps open check-in forms. Forms nobody touches expire.
type FormRegistry struct {
	forms *cache.Cache
}

// NewFormRegistry creates a registry whose forms expire after ttl of inactivity.
func NewFormRegistry(ttl time.Duration) *FormRegistry {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	return &FormRegistry{forms: cache.New(ttl, 2*ttl)}
}

// Open starts a form with an empty selection.
func (r *FormRegistry) Open() *CheckInForm {
	form := &CheckInForm{
		ID:        ulid.Make().String(),
		Selection: attendance.NewSelection(),
	}
	r.forms.SetDefault(form.ID, form)
	return form
}

// Get returns an open form and extends its lifetime.
func (r *FormRegistry) Get(id string) (*CheckInForm, bool) {
	v, ok := r.forms.Get(id)
	if !ok {
		return nil, false
	}
	form := v.(*CheckInForm)
	r.forms.SetDefault(id, form)
	return form, true
}

// Close resets and drops a form. Closing an unknown form is a no-op.
func (r *FormRegistry) Close(id string) {
	if v, ok := r.forms.Get(id); ok {
		v.(*CheckInForm).Selection.Reset()
	}
	r.forms.Delete(id)
}

// Len reports how many forms are open.
func (r *FormRegistry) Len() int {
	return r.forms.ItemCount()
}
