// ABOUTME: Bounded ring buffer of recently observed statement texts
// ABOUTME: Only the newest entry is consulted, as the conversational predecessor
package core

// DefaultRecentWindow is the default number of recent statements kept
const DefaultRecentWindow = 10

type recentWindow struct {
	buf   []string
	start int
	size  int
}

func newRecentWindow(capacity int) *recentWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &recentWindow{buf: make([]string, capacity)}
}

func (w *recentWindow) append(text string) {
	idx := (w.start + w.size) % len(w.buf)
	w.buf[idx] = text
	if w.size < len(w.buf) {
		w.size++
		return
	}
	w.start = (w.start + 1) % len(w.buf)
}

func (w *recentWindow) last() (string, bool) {
	if w.size == 0 {
		return "", false
	}
	return w.buf[(w.start+w.size-1)%len(w.buf)], true
}

// items returns the window contents oldest first
func (w *recentWindow) items() []string {
	out := make([]string, 0, w.size)
	for i := 0; i < w.size; i++ {
		out = append(out, w.buf[(w.start+i)%len(w.buf)])
	}
	return out
}
