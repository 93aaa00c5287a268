// Package anecdotetest provides an in-memory anecdote service for tests.
package anecdotetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
)

// FakeService is an in-memory anecdote.Service that records every call.
type FakeService struct {
	mu     sync.Mutex
	items  []anecdote.Anecdote
	nextID int

	ListErr   error
	CreateErr error
	UpdateErr error

	// OnList runs after List has read the stored items and before it returns
	// them. call is the 1-based List call number.
	OnList func(call int)

	ListCalls   int
	Created     []anecdote.Anecdote
	Updated     []anecdote.Anecdote
	GetRequests []string
}

var _ anecdote.Service = (*FakeService)(nil)

// NewFakeService returns a service pre-loaded with items.
func NewFakeService(items ...anecdote.Anecdote) *FakeService {
	return &FakeService{items: append([]anecdote.Anecdote(nil), items...)}
}

func (f *FakeService) List(_ context.Context) ([]anecdote.Anecdote, error) {
	f.mu.Lock()
	f.ListCalls++
	call, err, hook := f.ListCalls, f.ListErr, f.OnList
	items := append([]anecdote.Anecdote{}, f.items...)
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListCount returns the number of List calls so far.
func (f *FakeService) ListCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls
}

func (f *FakeService) Get(_ context.Context, id string) (anecdote.Anecdote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetRequests = append(f.GetRequests, id)
	for _, a := range f.items {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return anecdote.Anecdote{}, fmt.Errorf("anecdote %s not found", id)
}

func (f *FakeService) Create(_ context.Context, a anecdote.Anecdote) (anecdote.Anecdote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Created = append(f.Created, a)
	if f.CreateErr != nil {
		return anecdote.Anecdote{}, f.CreateErr
	}

	f.nextID++
	a.ID = anecdote.ID(fmt.Sprintf("new-%d", f.nextID))
	f.items = append(f.items, a)
	return a, nil
}

func (f *FakeService) Update(_ context.Context, a anecdote.Anecdote) (anecdote.Anecdote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Updated = append(f.Updated, a)
	if f.UpdateErr != nil {
		return anecdote.Anecdote{}, f.UpdateErr
	}

	for i := range f.items {
		if f.items[i].ID == a.ID {
			f.items[i] = a
			return a, nil
		}
	}
	return anecdote.Anecdote{}, fmt.Errorf("anecdote %s not found", a.ID)
}

// Items returns a copy of the stored anecdotes.
func (f *FakeService) Items() []anecdote.Anecdote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]anecdote.Anecdote{}, f.items...)
}

// UpdatedIDs returns the ids of all Update calls in order.
func (f *FakeService) UpdatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.Updated))
	for _, a := range f.Updated {
		ids = append(ids, a.ID.String())
	}
	return ids
}
