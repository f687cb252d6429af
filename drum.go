package main

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tombola/pickset"
	"tombola/pubsub"
)

var dlog zerolog.Logger

func init() {
	dlog = ComponentLogger("drum")
}

var ErrExhausted = errors.New("pool is exhausted")

type DrumEventType string

const (
	EventDraw    DrumEventType = "draw"
	EventReset   DrumEventType = "reset"
	EventSpin    DrumEventType = "spin"
	EventReverse DrumEventType = "reverse"
)

type DrumEvent struct {
	Type      DrumEventType `json:"type"`
	Pool      string        `json:"pool"`
	Entry     string        `json:"entry,omitempty"`
	Remaining int           `json:"remaining"`
}

// PoolStatus is the API-facing snapshot of a loaded pool.
type PoolStatus struct {
	Name      string   `json:"name"`
	Entries   []string `json:"entries"`
	Count     int      `json:"count"`
	Remaining int      `json:"remaining"`
}

// Drum holds the loaded pools and serializes all access to them. The pick
// sets themselves are single-writer structures; the drum's mutex is the
// locking layer around them.
type Drum struct {
	storage *Storage
	rng     *rand.Rand
	ps      *pubsub.Pubsub[DrumEvent]

	mu    sync.Mutex
	pools map[string]*pickset.PickSet[string]
}

func NewDrum(config *Config, storage *Storage) *Drum {
	seed := config.Seed()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Drum{
		storage: storage,
		rng:     rand.New(rand.NewSource(seed)),
		ps:      pubsub.New[DrumEvent](),
		pools:   make(map[string]*pickset.PickSet[string]),
	}
}

func (d *Drum) Subscribe() (func(), <-chan DrumEvent) {
	handle, ch := d.ps.Subscribe()
	return func() {
		d.ps.Unsubscribe(handle)
	}, ch
}

// pool returns the loaded pick set for name, loading it from storage on
// first use. Callers must hold d.mu.
func (d *Drum) pool(name string) (*pickset.PickSet[string], error) {
	if set, ok := d.pools[name]; ok {
		return set, nil
	}

	p, err := d.storage.LoadPool(name)
	if err != nil {
		return nil, err
	}

	dlog.Info().Str("pool", name).Int("entries", len(p.Entries)).Msg("Loading pool into drum")
	set := pickset.From(p.Entries)
	d.pools[name] = set
	return set, nil
}

// Unload drops the in-memory state of a pool, including its draw marks.
func (d *Drum) Unload(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pools, name)
}

// Draw grabs a random still-available entry from the pool. Every entry
// comes out exactly once until Reset.
func (d *Drum) Draw(name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return "", err
	}

	var available []int
	for i := 0; i < set.Len(); i++ {
		if set.Available(i) {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return "", fmt.Errorf("pool %q: %w", name, ErrExhausted)
	}

	i := available[d.rng.Intn(len(available))]
	entry, ok, err := set.Grab(i)
	if err != nil {
		return "", err
	}
	if !ok {
		// cannot happen while the mutex is held
		return "", fmt.Errorf("pool %q: index %d grabbed concurrently", name, i)
	}

	remaining := set.Remaining()
	dlog.Info().Str("pool", name).Str("entry", entry).Int("remaining", remaining).Msg("Drew entry")
	d.ps.Publish(DrumEvent{
		Type:      EventDraw,
		Pool:      name,
		Entry:     entry,
		Remaining: remaining,
	})
	return entry, nil
}

// Reset makes every entry of the pool drawable again.
func (d *Drum) Reset(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return err
	}

	set.Reset()
	dlog.Info().Str("pool", name).Msg("Reset pool")
	d.ps.Publish(DrumEvent{
		Type:      EventReset,
		Pool:      name,
		Remaining: set.Remaining(),
	})
	return nil
}

// Spin rotates the pool's logical order by rotate positions; zero picks a
// random rotation. Draw marks follow their entries.
func (d *Drum) Spin(name string, rotate int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return err
	}
	n := set.Len()
	if n == 0 {
		return fmt.Errorf("pool %q: %w", name, ErrExhausted)
	}

	if rotate == 0 {
		rotate = d.rng.Intn(n)
	}
	next := ((set.StartIndex()+rotate)%n + n) % n
	if err := set.SetStartIndex(next); err != nil {
		return err
	}

	dlog.Info().Str("pool", name).Int("rotate", rotate).Msg("Spun pool")
	d.ps.Publish(DrumEvent{
		Type:      EventSpin,
		Pool:      name,
		Remaining: set.Remaining(),
	})
	return nil
}

// Reverse flips the pool's logical order in place.
func (d *Drum) Reverse(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return err
	}

	set.Reverse()
	dlog.Info().Str("pool", name).Msg("Reversed pool")
	d.ps.Publish(DrumEvent{
		Type:      EventReverse,
		Pool:      name,
		Remaining: set.Remaining(),
	})
	return nil
}

func (d *Drum) Remaining(name string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return 0, err
	}
	return set.Remaining(), nil
}

func (d *Drum) Status(name string) (*PoolStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := d.pool(name)
	if err != nil {
		return nil, err
	}

	return &PoolStatus{
		Name:      name,
		Entries:   set.Items(),
		Count:     set.Len(),
		Remaining: set.Remaining(),
	}, nil
}
