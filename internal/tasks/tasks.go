// Package tasks is the front desk's short-lived to-do list. The whole list is
// kept as one JSON document under a fixed storage key.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gym-activity-backend/internal/store"
)

// StorageKey is where the list lives. Attendance data must never use it.
const StorageKey = "todos"

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrNotFound  = errors.New("task not found")
	ErrEmptyText = errors.New("task cannot be empty")
)

// Task is one to-do item in its persisted shape.
type Task struct {
	ID        int64  `json:"id"` // epoch milliseconds at creation
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// Filter selects which tasks All returns.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a query value to a Filter; unknown values mean all.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Storage is the slice of store.Store the list needs.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
}

// List is the in-memory working copy of the persisted tasks.
type List struct {
	mu      sync.Mutex
	storage Storage
	now     func() time.Time
	tasks   []Task
	loaded  bool
}

// NewList creates a list backed by storage. Nothing is read until first use.
func NewList(storage Storage) *List {
	return &List{storage: storage, now: time.Now}
}

// Load (re)reads the list from storage.
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *List) load(ctx context.Context) error {
	raw, err := l.storage.GetItem(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		l.tasks, l.loaded = nil, true
		return nil
	}
	if err != nil {
		return err
	}

	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return fmt.Errorf("failed to decode stored tasks: %w", err)
	}
	l.tasks, l.loaded = tasks, true
	return nil
}

func (l *List) ensureLoaded(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	return l.load(ctx)
}

// persist writes next to storage and adopts it only if the write succeeded.
func (l *List) persist(ctx context.Context, next []Task) error {
	if next == nil {
		next = []Task{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := l.storage.SetItem(ctx, StorageKey, string(raw)); err != nil {
		return err
	}
	l.tasks = next
	return nil
}

// All returns the tasks matching filter in creation order.
func (l *List) All(ctx context.Context, filter Filter) ([]Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		switch {
		case filter == FilterActive && t.Completed:
		case filter == FilterCompleted && !t.Completed:
		default:
			out = append(out, t)
		}
	}
	return out, nil
}

// Add appends a new open task.
func (l *List) Add(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return Task{}, err
	}

	now := l.now()
	id := now.UnixMilli()
	for _, t := range l.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}

	task := Task{
		ID:        id,
		Text:      text,
		CreatedAt: now.UTC().Format(isoLayout),
	}
	next := append(append([]Task{}, l.tasks...), task)
	if err := l.persist(ctx, next); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Toggle flips the completed flag of a task.
func (l *List) Toggle(ctx context.Context, id int64) (Task, error) {
	return l.modify(ctx, id, func(t *Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

// Update replaces the text of a task.
func (l *List) Update(ctx context.Context, id int64, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	return l.modify(ctx, id, func(t *Task) error {
		t.Text = text
		return nil
	})
}

// Delete removes a task.
func (l *List) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return err
	}

	next := make([]Task, 0, len(l.tasks))
	found := false
	for _, t := range l.tasks {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return l.persist(ctx, next)
}

func (l *List) modify(ctx context.Context, id int64, fn func(t *Task) error) (Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx); err != nil {
		return Task{}, err
	}

	next := append([]Task{}, l.tasks...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if err := fn(&next[i]); err != nil {
			return Task{}, err
		}
		if err := l.persist(ctx, next); err != nil {
			return Task{}, err
		}
		return next[i], nil
	}
	return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}
