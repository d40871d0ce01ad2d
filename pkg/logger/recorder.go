package logger

import "sync"

// Entry одна записанная строка.
type Entry struct {
	Level   string
	Message string
}

// Recorder запоминает сообщения в памяти.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder создает пустой recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(msg string, _ ...any)    { r.add("info", msg) }
func (r *Recorder) Success(msg string, _ ...any) { r.add("success", msg) }
func (r *Recorder) Warning(msg string, _ ...any) { r.add("warning", msg) }
func (r *Recorder) Error(msg string, _ ...any)   { r.add("error", msg) }
func (r *Recorder) Debug(msg string, _ ...any)   { r.add("debug", msg) }
func (r *Recorder) Step(msg string, _ ...any)    { r.add("step", msg) }

func (r *Recorder) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Entries возвращает копию всех записей по порядку.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages возвращает сообщения заданного уровня по порядку.
func (r *Recorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
