package resource

import (
	"sync"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/logging"
)

// loadedResource travels from the loader goroutine to the main
// goroutine once a payload has been read and parsed.
type loadedResource struct {
	id   ID
	data interface{} // parsed payload, nil when the load failed
}

// Manager tracks every resource the engine has requested and drives
// loads through a single background loader goroutine.
//
// All public methods other than the loader's internal side must be
// called from the main goroutine. Load requests complete in issue
// order; BringLoadedOnline hands completed payloads to their codec's
// Online hook on the main goroutine once per frame.
type Manager struct {
	bundle bundle.Bundle
	codecs *CodecSet
	alloc  *Allocator
	seed   uint32

	resources registry

	loadingMu       sync.Mutex
	loadingQueue    []ID
	inFlight        int // requests popped but not yet completed
	shouldRun       bool
	loadingRequests *sync.Cond // a request entered loadingQueue
	allLoaded       *sync.Cond // loadingQueue drained and nothing in flight

	loadedMu    sync.Mutex
	loadedQueue []loadedResource

	wg      sync.WaitGroup
	started bool
}

// New creates a Manager reading from b with the codecs in cs. Payload
// memory is drawn from alloc. seed is the content seed mixed into name
// hashes. New does not start the loader; call Start before issuing
// loads.
func New(b bundle.Bundle, cs *CodecSet, alloc *Allocator, seed uint32) *Manager {
	m := &Manager{
		bundle: b,
		codecs: cs,
		alloc:  alloc,
		seed:   seed,
	}
	m.loadingRequests = sync.NewCond(&m.loadingMu)
	m.allLoaded = sync.NewCond(&m.loadingMu)
	return m
}

// String converts the manager into a human readable form for logs.
func (m *Manager) String() string {
	return "resource manager"
}

// Start spawns the background loader. The manager is fully constructed
// by the time the goroutine runs.
func (m *Manager) Start() {
	if m.started {
		return
	}
	m.started = true
	m.shouldRun = true
	m.wg.Add(1)
	go m.backgroundLoad()
}

// Seed returns the content seed used for name hashes.
func (m *Manager) Seed() uint32 {
	return m.seed
}

// Allocator returns the allocator payload memory is drawn from.
func (m *Manager) Allocator() *Allocator {
	return m.alloc
}

// Load requests the resource at name, e.g. "textures/brick.tga", and
// returns its id. The data is generally not available yet: the request
// is queued for the background loader and completes during a later
// BringLoadedOnline, or synchronously via Flush. Loading an
// already-requested resource only bumps its refcount.
//
// Load never fails: a missing or unreadable resource completes with a
// nil payload and an error log entry, and Data reports nil for it.
func (m *Manager) Load(name string) ID {
	basename, ext := SplitPath(name)
	return m.load(NameHash(basename, m.seed), TypeHash(ext))
}

// load requests the resource with the given name and type hashes.
func (m *Manager) load(name, typ uint32) ID {
	id, enqueue := m.resources.findOrInsert(name, typ)
	if enqueue {
		m.enqueue(id)
	}
	return id
}

// enqueue appends a request and wakes the loader.
func (m *Manager) enqueue(id ID) {
	m.loadingMu.Lock()
	m.loadingQueue = append(m.loadingQueue, id)
	m.loadingRequests.Signal()
	m.loadingMu.Unlock()
}

// Unload drops one reference to id. When the last reference to a
// loaded resource goes away its codec's Offline and Unload hooks run
// and the payload is cleared; the registry row is retained so a later
// Load yields the same id.
func (m *Manager) Unload(id ID) {
	data, unload := m.resources.release(id)
	if !unload {
		return
	}
	if data != nil {
		if c := m.codecs.Lookup(id.Type); c != nil {
			c.Offline(data)
			c.Unload(m.alloc, data)
		}
	}
	m.resources.clearUnloaded(id)
}

// Reload unloads id in place and queues it for loading again, keeping
// the refcount. Used for hot reload from a content tool. A resource
// that is not currently loaded is left alone.
func (m *Manager) Reload(id ID) {
	data, ok := m.resources.beginReload(id)
	if !ok {
		return
	}
	if data != nil {
		if c := m.codecs.Lookup(id.Type); c != nil {
			c.Offline(data)
			c.Unload(m.alloc, data)
		}
	}
	m.resources.clearUnloaded(id)
	m.resources.requeueLoading(id)
	m.enqueue(id)
}

// Has reports whether id names a resource the manager has seen.
func (m *Manager) Has(id ID) bool {
	return m.resources.has(id)
}

// IsLoaded reports whether the resource is loaded, i.e. whether Data
// may be used.
func (m *Manager) IsLoaded(id ID) bool {
	return m.resources.isLoaded(id)
}

// References returns the number of references to id.
func (m *Manager) References(id ID) uint32 {
	return m.resources.references(id)
}

// Data returns the payload of id, or nil when the resource is not
// loaded or failed to load. The value must not be used after a
// subsequent Unload or Reload of the same id.
func (m *Manager) Data(id ID) interface{} {
	return m.resources.data(id)
}

// Remaining returns the number of requests the loader has not yet
// popped. Zero does not mean no work is in progress: a request may be
// between pop and completion. Use Flush for that guarantee.
func (m *Manager) Remaining() uint32 {
	m.loadingMu.Lock()
	defer m.loadingMu.Unlock()
	return uint32(len(m.loadingQueue))
}

// CheckLoadQueue pokes the loader if requests are pending. Called once
// per frame by the device.
func (m *Manager) CheckLoadQueue() {
	m.loadingMu.Lock()
	if len(m.loadingQueue) > 0 {
		m.loadingRequests.Signal()
	}
	m.loadingMu.Unlock()
}

// BringLoadedOnline drains the completion queue on the main goroutine.
// Each completed payload is handed to its codec's Online hook, then
// the registry row moves to loaded. Called once per frame by the
// device, and by Flush.
func (m *Manager) BringLoadedOnline() {
	for {
		m.loadedMu.Lock()
		if len(m.loadedQueue) == 0 {
			m.loadedMu.Unlock()
			return
		}
		lr := m.loadedQueue[0]
		m.loadedQueue = m.loadedQueue[1:]
		m.loadedMu.Unlock()

		if lr.data != nil {
			if c := m.codecs.Lookup(lr.id.Type); c != nil {
				c.Online(lr.data)
			}
		}
		m.resources.setLoaded(lr.id, lr.data)
	}
}

// Flush blocks until every request issued before the call has been
// loaded by the background loader and brought online. Failed loads
// count as complete; they are logged, not propagated. The loader must
// have been started for the queue to drain.
func (m *Manager) Flush() {
	m.CheckLoadQueue()

	m.loadingMu.Lock()
	for len(m.loadingQueue) > 0 || m.inFlight > 0 {
		m.allLoaded.Wait()
	}
	m.loadingMu.Unlock()

	m.BringLoadedOnline()
}

// backgroundLoad is the loader goroutine. It pops one request at a
// time, runs the codec's Load against the bundle and queues the
// completion. Completions appear in pop order.
func (m *Manager) backgroundLoad() {
	defer m.wg.Done()
	for {
		m.loadingMu.Lock()
		for len(m.loadingQueue) == 0 && m.shouldRun {
			m.loadingRequests.Wait()
		}
		if !m.shouldRun {
			m.loadingMu.Unlock()
			return
		}
		id := m.loadingQueue[0]
		m.loadingQueue = m.loadingQueue[1:]
		m.inFlight++
		m.loadingMu.Unlock()

		data := m.loadByType(id)

		m.loadedMu.Lock()
		m.loadedQueue = append(m.loadedQueue, loadedResource{id: id, data: data})
		m.loadedMu.Unlock()

		m.loadingMu.Lock()
		m.inFlight--
		if len(m.loadingQueue) == 0 && m.inFlight == 0 {
			m.allLoaded.Broadcast()
		}
		m.loadingMu.Unlock()
	}
}

// loadByType runs the codec load for id on the loader goroutine. Any
// failure is logged and reported as a nil payload so the request still
// completes.
func (m *Manager) loadByType(id ID) interface{} {
	c := m.codecs.Lookup(id.Type)
	if c == nil {
		logging.Errorf(m, "no codec for resource %v", id)
		return nil
	}
	data, err := c.Load(m.alloc, m.bundle, id)
	if err != nil {
		logging.Errorf(m, "failed to load %s %v: %v", c.Name, id, err)
		return nil
	}
	return data
}

// Close flushes outstanding requests, unloads every live payload,
// stops the loader goroutine and waits for it to exit. The allocator
// reports zero live allocations afterwards unless a codec leaked.
func (m *Manager) Close() error {
	if m.started {
		m.Flush()
	}

	for _, e := range m.resources.snapshot() {
		if e.state != StateLoaded || e.data == nil {
			continue
		}
		data, ok := m.resources.beginReload(e.id)
		if !ok {
			continue
		}
		if c := m.codecs.Lookup(e.id.Type); c != nil {
			c.Offline(data)
			c.Unload(m.alloc, data)
		}
		m.resources.clearUnloaded(e.id)
	}

	if m.started {
		m.loadingMu.Lock()
		m.shouldRun = false
		m.loadingRequests.Broadcast()
		m.loadingMu.Unlock()
		m.wg.Wait()
		m.started = false
	}

	if n := m.alloc.Allocations(); n != 0 {
		logging.Errorf(m, "%d payload allocations still live at shutdown", n)
	}
	return nil
}
