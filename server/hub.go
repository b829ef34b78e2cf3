package server

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"adrenaline/engine/persistence"
	"adrenaline/shared/logger"
)

var ErrMatchNotFound = errors.New("match not found")

// Hub is the registry of live matches. It only guards the map; every match
// runs its own actor goroutine.
type Hub struct {
	locker      sync.RWMutex
	matches     map[string]*Match
	results     ResultRecorder
	snapshotDir string
}

func NewHub(results ResultRecorder, snapshotDir string) *Hub {
	return &Hub{
		matches:     make(map[string]*Match),
		results:     results,
		snapshotDir: snapshotDir,
	}
}

func (h *Hub) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (h *Hub) storeFor(id string) *persistence.Store {
	return persistence.NewStore(filepath.Join(h.snapshotDir, id+".snap"))
}

// CreateMatch opens a fresh lobby and starts its actor.
func (h *Hub) CreateMatch() *Match {
	id := uuid.NewString()
	m := newMatch(id, h, h.storeFor(id), h.results, h.newRNG())

	h.locker.Lock()
	h.matches[id] = m
	h.locker.Unlock()

	go m.run()
	return m
}

func (h *Hub) FindMatch(id string) (*Match, bool) {
	h.locker.RLock()
	defer h.locker.RUnlock()
	m, ok := h.matches[id]
	return m, ok
}

func (h *Hub) remove(m *Match) {
	h.locker.Lock()
	delete(h.matches, m.id)
	h.locker.Unlock()
}

// Resume reloads every snapshot found on disk so matches survive a restart.
// Players re-enter through the normal join path.
func (h *Hub) Resume() {
	entries, err := os.ReadDir(h.snapshotDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warningf("hub: reading snapshot dir: %v", err)
		}
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".snap") {
			continue
		}
		id := strings.TrimSuffix(name, ".snap")
		store := h.storeFor(id)

		snap, err := store.Load()
		if err != nil {
			logger.Criticalf("hub: snapshot %s unreadable, skipping: %v", name, err)
			continue
		}

		m := newMatch(id, h, store, h.results, h.newRNG())
		gm, err := snap.Restore(m, m.rng)
		if err != nil {
			logger.Criticalf("hub: snapshot %s not restorable, skipping: %v", name, err)
			continue
		}
		m.gm = gm
		m.phase = phasePlaying

		h.locker.Lock()
		h.matches[id] = m
		h.locker.Unlock()

		go m.run()
		logger.Infof("hub: resumed match %s from snapshot (saved %s)", id, snap.SavedAt.Format(time.RFC3339))
	}
}

// StartTickers drives the per-match ping loop.
func (h *Hub) StartTickers() {
	pingTicker := time.NewTicker(4 * time.Second)
	go func() {
		for range pingTicker.C {
			h.locker.RLock()
			for _, m := range h.matches {
				select {
				case m.ticks <- struct{}{}:
				default:
				}
			}
			h.locker.RUnlock()
		}
	}()
}
