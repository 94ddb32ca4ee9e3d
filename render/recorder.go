package render

import "sync"

// Recorder is an Ops implementation that only records calls. It backs
// the test suites and headless runs of the engine.
type Recorder struct {
	mu   sync.Mutex
	next Handle
	Ops  []string // call log, e.g. "CreateTexture"
	Live map[Handle]string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{next: 1, Live: make(map[Handle]string)}
}

func (r *Recorder) create(kind string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.next
	r.next++
	r.Ops = append(r.Ops, "Create"+kind)
	r.Live[h] = kind
	return h
}

func (r *Recorder) destroy(kind string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Ops = append(r.Ops, "Destroy"+kind)
	delete(r.Live, h)
}

// CreateTexture records the call and returns a fresh handle.
func (r *Recorder) CreateTexture(format uint32, width, height uint16, pixels []byte) Handle {
	return r.create("Texture")
}

// DestroyTexture records the call.
func (r *Recorder) DestroyTexture(h Handle) {
	r.destroy("Texture", h)
}

// CreateShader records the call and returns a fresh handle.
func (r *Recorder) CreateShader(kind uint32, source []byte) Handle {
	return r.create("Shader")
}

// DestroyShader records the call.
func (r *Recorder) DestroyShader(h Handle) {
	r.destroy("Shader", h)
}

// CreateVertexBuffer records the call and returns a fresh handle.
func (r *Recorder) CreateVertexBuffer(count uint32, data []byte) Handle {
	return r.create("VertexBuffer")
}

// CreateIndexBuffer records the call and returns a fresh handle.
func (r *Recorder) CreateIndexBuffer(count uint32, data []byte) Handle {
	return r.create("IndexBuffer")
}

// DestroyBuffer records the call.
func (r *Recorder) DestroyBuffer(h Handle) {
	r.destroy("Buffer", h)
}

// LiveCount returns the number of renderer objects not yet destroyed.
func (r *Recorder) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Live)
}

// check interface
var _ Ops = (*Recorder)(nil)
