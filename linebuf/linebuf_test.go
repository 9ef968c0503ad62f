package linebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New(3)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, 3, b.Cap())

	_, ok := b.Line(0)
	assert.False(t, ok)

	assert.Equal(t, 1, New(0).Cap())
	assert.Equal(t, 1, New(-4).Cap())
}

func TestPush(t *testing.T) {
	tests := []struct {
		name       string
		max        int
		pushes     []string
		want       []string
		wantCursor int
	}{
		{"single char creates line", 3, []string{"a"}, []string{"a"}, 1},
		{"empty push creates nothing", 3, []string{""}, []string{}, 0},
		{"eviction keeps newest", 3, []string{"a\nb\nc\nd"}, []string{"d", "c", "b"}, 1},
		{"carriage return overwrites", 3, []string{"ab\rX"}, []string{"Xb"}, 1},
		{"newline first", 3, []string{"\nx"}, []string{"x", ""}, 1},
		{"trailing newline", 3, []string{"abc\n"}, []string{"", "abc"}, 0},
		{"split across pushes", 3, []string{"he", "llo"}, []string{"hello"}, 5},
		{"clock redraw", 2, []string{"12:00:00", "\r12:00:01", "\r12:00:02"}, []string{"12:00:02"}, 8},
		{"capacity one", 1, []string{"a\nb\nc"}, []string{"c"}, 1},
		{"unicode is per rune", 3, []string{"°C\rF"}, []string{"FC"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.max)
			for _, s := range tt.pushes {
				b.Push(s)
			}
			assert.Equal(t, tt.want, b.Lines())
			assert.Equal(t, len(tt.want), b.Len())
			assert.Equal(t, tt.wantCursor, b.Cursor())
			assert.LessOrEqual(t, b.Len(), b.Cap())
		})
	}
}

func TestPushPadsToCursor(t *testing.T) {
	b := New(3)
	b.Push("ab")
	b.SetCursor(5)

	b.Push("c")

	line, ok := b.Line(0)
	require.True(t, ok)
	assert.Equal(t, "ab   c", line)
	assert.Len(t, line, 6)
	assert.Equal(t, 6, b.Cursor())
}

func TestPushReplacesInsideLine(t *testing.T) {
	b := New(3)
	b.Push("hello")
	b.SetCursor(1)
	b.Push("EL")

	line, _ := b.Line(0)
	assert.Equal(t, "hELlo", line)
	assert.Equal(t, 3, b.Cursor())

	b.SetCursor(-2)
	assert.Equal(t, 0, b.Cursor())
}

func TestLine(t *testing.T) {
	b := New(5)
	b.Push("one\ntwo\nthree")

	for i, want := range []string{"three", "two", "one"} {
		got, ok := b.Line(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := b.Line(3)
	assert.False(t, ok)
	_, ok = b.Line(-1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	b := New(3)
	b.Push("a\nbc")

	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cursor())
	assert.Empty(t, b.Lines())

	b.Push("z")
	assert.Equal(t, []string{"z"}, b.Lines())
}

func TestLinesIsCopy(t *testing.T) {
	b := New(2)
	b.Push("abc")
	lines := b.Lines()
	lines[0] = "zzz"

	line, _ := b.Line(0)
	assert.Equal(t, "abc", line)
}
