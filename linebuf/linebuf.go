// Package linebuf implements a scrolling text model: a bounded history of
// lines, most recent first, and a write cursor on the most recent line.
//
// Text is pushed one character at a time. '\n' opens a new line at the
// head and evicts the oldest line when the buffer is full. '\r' moves the
// cursor back to column 0 so the next characters overwrite the head line in
// place, which is how a clock redraws itself every tick.
package linebuf

import "slices"

// Buffer is a bounded, most-recent-first list of text lines. It is not safe
// for concurrent use.
type Buffer struct {
	lines [][]rune
	max   int
	index int
}

// New returns an empty buffer holding at most maxLines lines. maxLines
// below 1 is raised to 1.
func New(maxLines int) *Buffer {
	return &Buffer{max: max(maxLines, 1)}
}

// Push consumes text one character at a time.
func (b *Buffer) Push(text string) {
	for _, c := range text {
		if len(b.lines) == 0 {
			b.lines = append(b.lines, nil)
		}
		switch c {
		case '\n':
			b.lines = slices.Insert(b.lines, 0, []rune(nil))
			if len(b.lines) > b.max {
				b.lines = b.lines[:b.max]
			}
			b.index = 0
		case '\r':
			b.index = 0
		default:
			b.put(c)
		}
	}
}

// put writes c at the cursor of the head line, padding with spaces when
// the cursor is past the end, and advances the cursor.
func (b *Buffer) put(c rune) {
	head := b.lines[0]
	for len(head) < b.index {
		head = append(head, ' ')
	}
	if b.index < len(head) {
		head[b.index] = c
	} else {
		head = append(head, c)
	}
	b.lines[0] = head
	b.index++
}

// Line returns line i, 0 being the most recent.
func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return string(b.lines[i]), true
}

// Lines returns a copy of all lines, most recent first.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Cap returns the maximum number of lines.
func (b *Buffer) Cap() int {
	return b.max
}

// Cursor returns the write column on the head line.
func (b *Buffer) Cursor() int {
	return b.index
}

// SetCursor moves the write column on the head line. Negative values are
// treated as 0.
func (b *Buffer) SetCursor(col int) {
	b.index = max(col, 0)
}

// Clear drops every line and resets the cursor.
func (b *Buffer) Clear() {
	b.lines = nil
	b.index = 0
}
