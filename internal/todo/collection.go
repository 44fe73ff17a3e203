package todo

import (
	"github.com/google/uuid"
)

// Collection is the shared keyed task store. Controllers hold a pointer to
// the same Collection and never keep private copies of its tasks.
type Collection struct {
	tasks   map[uuid.UUID]Task
	version uint64
}

func NewCollection(tasks ...Task) *Collection {
	c := &Collection{tasks: make(map[uuid.UUID]Task, len(tasks))}
	for _, t := range tasks {
		c.tasks[t.ID] = t
	}
	return c
}

func (c *Collection) Get(id uuid.UUID) (Task, bool) {
	t, ok := c.tasks[id]
	return t, ok
}

func (c *Collection) Contains(id uuid.UUID) bool {
	_, ok := c.tasks[id]
	return ok
}

// Put inserts or replaces the task with the same id.
func (c *Collection) Put(t Task) {
	c.tasks[t.ID] = t
	c.version++
}

// Update applies fn to the stored task. Missing ids are ignored.
func (c *Collection) Update(id uuid.UUID, fn func(*Task)) bool {
	t, ok := c.tasks[id]
	if !ok {
		return false
	}
	fn(&t)
	t.ID = id
	c.tasks[id] = t
	c.version++
	return true
}

func (c *Collection) Remove(id uuid.UUID) bool {
	if _, ok := c.tasks[id]; !ok {
		return false
	}
	delete(c.tasks, id)
	c.version++
	return true
}

func (c *Collection) Len() int { return len(c.tasks) }

// All returns the tasks in no particular order.
func (c *Collection) All() []Task {
	out := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t)
	}
	return out
}

// Version increases on every mutation.
func (c *Collection) Version() uint64 { return c.version }
