// Package stream fakes incremental delivery of an already-complete text
// block, chunk by chunk, to preserve a live feel. There is no real
// network streaming behind it: the full reply exists before the first
// chunk is shown.
package stream

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Inter-chunk delay bounds. Uniformly distributed.
const (
	minDelay = 10 * time.Millisecond
	maxDelay = 30 * time.Millisecond
)

// Chunks splits s into word and whitespace runs. Whitespace runs are
// chunks of their own, so joining the chunks reproduces s byte for byte.
// Splitting works on byte offsets, never through a []rune conversion:
// bytes that are not valid UTF-8 pass through untouched instead of
// being rewritten to U+FFFD. They decode as non-space and group with
// the surrounding word run.
func Chunks(s string) []string {
	if s == "" {
		return nil
	}
	var chunks []string
	start := 0
	inSpace := false
	first := true
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if first {
			inSpace = isSpace
			first = false
			continue
		}
		if isSpace != inSpace {
			chunks = append(chunks, s[start:i])
			start = i
			inSpace = isSpace
		}
	}
	return append(chunks, s[start:])
}

// Delay returns a random inter-chunk pause in [minDelay, maxDelay].
func Delay() time.Duration {
	span := int64(maxDelay - minDelay)
	return minDelay + time.Duration(rand.Int63n(span+1))
}

// Revealer steps through a text block one chunk at a time. It is the
// building block for tick-driven reveal in the UI loop; each Step visits
// exactly one chunk, in order, never skipping or repeating.
type Revealer struct {
	chunks []string
	idx    int
	acc    strings.Builder
}

// NewRevealer prepares a reveal of full. An empty input is already done.
func NewRevealer(full string) *Revealer {
	return &Revealer{chunks: Chunks(full)}
}

// Done reports whether every chunk has been revealed.
func (r *Revealer) Done() bool {
	return r.idx >= len(r.chunks)
}

// Step appends the next chunk and returns the accumulated partial text.
// Calling Step after Done returns the final accumulator unchanged.
func (r *Revealer) Step() string {
	if r.idx < len(r.chunks) {
		r.acc.WriteString(r.chunks[r.idx])
		r.idx++
	}
	return r.acc.String()
}

// Reveal discloses full progressively, invoking onUpdate with the
// accumulated text after each chunk and sleeping a randomized interval
// between chunks. It blocks until the reveal completes; the final
// accumulator equals full exactly. An empty input completes immediately
// with no updates. Once started, a reveal runs to completion — there is
// no cancellation.
func Reveal(full string, onUpdate func(partial string)) {
	reveal(full, onUpdate, time.Sleep)
}

// reveal is the sleep-injectable core used by tests.
func reveal(full string, onUpdate func(string), sleep func(time.Duration)) {
	r := NewRevealer(full)
	first := true
	for !r.Done() {
		if !first {
			sleep(Delay())
		}
		first = false
		onUpdate(r.Step())
	}
}
