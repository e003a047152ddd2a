// Package store is the persistence collaborator: CRUD for tasks, habits, and
// users as YAML files, one file per entity. Live timers are never persisted
// here; the in-memory schedulers stay authoritative for what will fire, and
// the user-facing listings read this store independently.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Task is a deadline-bound item extracted from an utterance.
type Task struct {
	ID        string    `yaml:"id"`
	OwnerID   string    `yaml:"owner_id"`
	Text      string    `yaml:"text"`
	DueAt     time.Time `yaml:"due_at,omitempty"`
	Done      bool      `yaml:"done"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Habit is a recurring personal item.
type Habit struct {
	ID        string    `yaml:"id"`
	OwnerID   string    `yaml:"owner_id"`
	Text      string    `yaml:"text"`
	CreatedAt time.Time `yaml:"created_at"`
}

// User is a known owner.
type User struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Store persists entities as {kind}/{id}.yaml under a root directory.
type Store struct {
	root string
	mu   sync.Mutex
	seq  int
}

// New creates a Store rooted at dir, creating the kind subdirectories.
func New(dir string) (*Store, error) {
	for _, sub := range []string{"tasks", "habits", "users"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return &Store{root: dir}, nil
}

// NextID returns a process-unique entity identifier.
func (s *Store) NextID(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s-%d-%d", kind, time.Now().UnixMilli(), s.seq)
}

// SaveTask creates or overwrites a task.
func (s *Store) SaveTask(t Task) error { return s.write("tasks", t.ID, t) }

// GetTask loads one task. Returns os.ErrNotExist when absent.
func (s *Store) GetTask(id string) (Task, error) {
	var t Task
	err := s.read("tasks", id, &t)
	return t, err
}

// DeleteTask removes a task file; absent files are not an error.
func (s *Store) DeleteTask(id string) error { return s.remove("tasks", id) }

// ListTasks returns the owner's tasks ordered by due time.
func (s *Store) ListTasks(ownerID string) ([]Task, error) {
	var all []Task
	err := s.list("tasks", func(path string) {
		var t Task
		if readFile(path, &t) == nil && t.OwnerID == ownerID {
			all = append(all, t)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DueAt.Before(all[j].DueAt) })
	return all, nil
}

// SaveHabit creates or overwrites a habit.
func (s *Store) SaveHabit(h Habit) error { return s.write("habits", h.ID, h) }

// DeleteHabit removes a habit file.
func (s *Store) DeleteHabit(id string) error { return s.remove("habits", id) }

// ListHabits returns the owner's habits ordered by creation time.
func (s *Store) ListHabits(ownerID string) ([]Habit, error) {
	var all []Habit
	err := s.list("habits", func(path string) {
		var h Habit
		if readFile(path, &h) == nil && h.OwnerID == ownerID {
			all = append(all, h)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

// SaveUser creates or overwrites a user record.
func (s *Store) SaveUser(u User) error { return s.write("users", u.ID, u) }

// GetUser loads one user. Returns os.ErrNotExist when absent.
func (s *Store) GetUser(id string) (User, error) {
	var u User
	err := s.read("users", id, &u)
	return u, err
}

// EnsureUser creates the user record on first contact.
func (s *Store) EnsureUser(id string) (User, error) {
	u, err := s.GetUser(id)
	if err == nil {
		return u, nil
	}
	if !os.IsNotExist(err) {
		return User{}, err
	}
	u = User{ID: id, CreatedAt: time.Now()}
	if err := s.SaveUser(u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) write(kind, id string, v any) error {
	if id == "" {
		return fmt.Errorf("%s: empty id", kind)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(kind, id), data, 0o644); err != nil {
		return fmt.Errorf("write %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *Store) read(kind, id string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readFile(s.path(kind, id), v)
}

func (s *Store) remove(kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(kind, id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *Store) list(kind string, visit func(path string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(filepath.Join(s.root, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s dir: %w", kind, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		visit(filepath.Join(s.root, kind, entry.Name()))
	}
	return nil
}

func (s *Store) path(kind, id string) string {
	return filepath.Join(s.root, kind, id+".yaml")
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}
