package pages

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Repository.
type MemoryStore struct {
	Hub

	byID   map[string]Page
	byPath map[string]string
	mu     sync.RWMutex
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding seed. Seed pages are created in
// path order so parents are linked before their children.
func NewMemoryStore(seed ...Page) (*MemoryStore, error) {
	s := &MemoryStore{
		byID:   make(map[string]Page),
		byPath: make(map[string]string),
	}

	pages := slices.Clone(seed)
	SortTree(pages)
	for i := range pages {
		if err := s.Create(context.Background(), &pages[i]); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Candidates implements Store.
func (s *MemoryStore) Candidates(_ context.Context, paths []string) ([]Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Page
	for _, path := range paths {
		if id, ok := s.byPath[path]; ok {
			out = append(out, s.byID[id])
		}
	}
	SortLongestFirst(out)
	return out, nil
}

// All implements Store.
func (s *MemoryStore) All(_ context.Context) ([]Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Page, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	SortTree(out)
	return out, nil
}

// Get implements Repository.
func (s *MemoryStore) Get(_ context.Context, id string) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Page{}, fmt.Errorf("%w: id %q", ErrPageNotFound, id)
	}
	return p, nil
}

// GetByPath implements Repository.
func (s *MemoryStore) GetByPath(_ context.Context, path string) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPath[NormalizePath(path)]
	if !ok {
		return Page{}, fmt.Errorf("%w: path %q", ErrPageNotFound, path)
	}
	return s.byID[id], nil
}

// Children implements Repository.
func (s *MemoryStore) Children(_ context.Context, parentID string) ([]Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Page
	for _, p := range s.byID {
		if p.ParentID == parentID {
			out = append(out, p)
		}
	}
	SortSiblings(out)
	return out, nil
}

// Create implements Repository. An empty ID is filled with a new UUID and
// an empty ParentID is derived from the path.
func (s *MemoryStore) Create(_ context.Context, p *Page) error {
	p.Path = NormalizePath(p.Path)
	if err := ValidatePath(p.Path); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.byPath[p.Path]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicatePath, p.Path)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if _, ok := s.byID[p.ID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
	}
	if err := s.linkParent(p); err != nil {
		s.mu.Unlock()
		return err
	}
	if p.Order == 0 {
		p.Order = s.nextOrder(p.ParentID)
	}
	s.byID[p.ID] = *p
	s.byPath[p.Path] = p.ID
	s.mu.Unlock()

	s.Publish(Event{Kind: EventCreated, Page: *p})
	return nil
}

// Update implements Repository. Changing the path moves every descendant
// along with the page.
func (s *MemoryStore) Update(_ context.Context, p *Page) error {
	p.Path = NormalizePath(p.Path)

	s.mu.Lock()
	old, ok := s.byID[p.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %q", ErrPageNotFound, p.ID)
	}
	if err := CheckMove(old.Path, p.Path); err != nil {
		s.mu.Unlock()
		return err
	}

	moved := old.Path != p.Path
	if moved {
		p.ParentID = ""
	}
	if err := s.linkParent(p); err != nil {
		s.mu.Unlock()
		return err
	}
	if moved {
		if err := s.move(old.Path, p.Path); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.byID[p.ID] = *p
	s.byPath[p.Path] = p.ID
	s.mu.Unlock()

	s.Publish(Event{Kind: EventUpdated, Page: *p, OldPath: old.Path})
	return nil
}

// Delete implements Repository. Descendants are deleted with the page;
// deleting the root page removes only the root.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	p, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %q", ErrPageNotFound, id)
	}
	for _, q := range s.byID {
		if p.Path != "" && IsDescendant(q.Path, p.Path) {
			delete(s.byID, q.ID)
			delete(s.byPath, q.Path)
		}
	}
	delete(s.byID, p.ID)
	delete(s.byPath, p.Path)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventDeleted, Page: p})
	return nil
}

// move rebases the page at oldPath and its descendants onto newPath.
// The caller holds the write lock.
func (s *MemoryStore) move(oldPath, newPath string) error {
	var subtree []Page
	for _, q := range s.byID {
		if q.Path == oldPath || IsDescendant(q.Path, oldPath) {
			subtree = append(subtree, q)
		}
	}

	for _, q := range subtree {
		target := Rebase(q.Path, oldPath, newPath)
		if id, ok := s.byPath[target]; ok && !IsDescendant(s.byID[id].Path, oldPath) && s.byID[id].Path != oldPath {
			return fmt.Errorf("%w: %q", ErrDuplicatePath, target)
		}
	}

	for _, q := range subtree {
		delete(s.byPath, q.Path)
	}
	for _, q := range subtree {
		q.Path = Rebase(q.Path, oldPath, newPath)
		s.byID[q.ID] = q
		s.byPath[q.Path] = q.ID
	}
	return nil
}

// linkParent validates or derives p.ParentID from the path.
// The caller holds the write lock.
func (s *MemoryStore) linkParent(p *Page) error {
	parentPath, hasParent := ParentPath(p.Path)
	if p.ParentID == "" {
		if hasParent {
			p.ParentID = s.byPath[parentPath]
		}
		return nil
	}

	parent, ok := s.byID[p.ParentID]
	if !ok {
		return fmt.Errorf("%w: parent %q", ErrPageNotFound, p.ParentID)
	}
	if !hasParent || parent.Path != parentPath {
		return fmt.Errorf("%w: %q is not a child of %q", ErrInvalidPath, p.Path, parent.Path)
	}
	return nil
}

func (s *MemoryStore) nextOrder(parentID string) int {
	n := 0
	for _, q := range s.byID {
		if q.ParentID == parentID && q.Order > n {
			n = q.Order
		}
	}
	return n + 1
}

// SortSiblings orders pages by Order, then by path.
func SortSiblings(pages []Page) {
	slices.SortFunc(pages, func(a, b Page) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Path, b.Path)
	})
}
