package argparse

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-argparse/internal/pool"
)

// endOfOptions is the literal token after which everything is positional.
const endOfOptions = "--"

// maxPooledBuffers bounds how many idle token buffers each pool keeps.
const maxPooledBuffers = 64

var (
	argPool  = capped(pool.NewSlicePool[string](16, 1024))
	maskPool = capped(pool.NewSlicePool[bool](16, 1024))
)

func capped[E any](sp *pool.SlicePool[E]) *pool.SlicePool[E] {
	sp.SetMaxSize(maxPooledBuffers)
	return sp
}

// tokens is the shared buffer all retrieval operations consume from.
//
// Consumed tokens stay in place so indices are stable across phases. Tokens
// that arrive empty are treated as already consumed.
type tokens struct {
	args     []string
	consumed []bool
	end      int // index of the first "--", or len(args)

	argBuf  *[]string
	maskBuf *[]bool
}

// newTokens copies args into pooled storage; release hands it back.
func newTokens(args []string) *tokens {
	argBuf, maskBuf := argPool.Get(), maskPool.Get()
	*argBuf = append(*argBuf, args...)
	for _, arg := range args {
		*maskBuf = append(*maskBuf, arg == "")
	}

	t := &tokens{
		args:     *argBuf,
		consumed: *maskBuf,
		end:      len(args),
		argBuf:   argBuf,
		maskBuf:  maskBuf,
	}
	if i := slices.Index(t.args, endOfOptions); i >= 0 {
		t.end = i
	}
	return t
}

func (t *tokens) release() {
	if t.argBuf == nil {
		return
	}
	argPool.Put(t.argBuf)
	maskPool.Put(t.maskBuf)
	t.args, t.consumed = nil, nil
	t.argBuf, t.maskBuf = nil, nil
}

func (t *tokens) consume(i int) {
	t.consumed[i] = true
}

func (t *tokens) live(i int) bool {
	return !t.consumed[i]
}

// find returns the index of the first live token in [from, end) matching id,
// or t.end if there is none.
func (t *tokens) find(from int, id ID) int {
	if id.Empty() {
		return t.end
	}
	for i := from; i < t.end; i++ {
		if t.live(i) && id.Matches(t.args[i]) {
			return i
		}
	}
	return t.end
}

// extract takes the value belonging to the identifier found at index i and
// marks every token it used as consumed. It returns the value and the index
// of the last token consumed.
func (t *tokens) extract(i int, f form) (string, int, error) {
	tok := t.args[i]
	n := len(f.prefix)

	if len(tok) > n {
		// -kValue or -k=Value
		value := tok[n:]
		if tok[n] == '=' {
			if len(tok) == n+1 {
				return "", i, missingValue(f)
			}
			value = tok[n+1:]
		}
		t.consume(i)
		return value, i, nil
	}

	// -k Value
	t.consume(i)
	next := i + 1
	if next >= t.end || !t.live(next) {
		return "", i, missingValue(f)
	}
	t.consume(next)
	return t.args[next], next, nil
}

func missingValue(f form) *Error {
	return &Error{
		Kind:    ErrorKindTooFewArguments,
		Message: "Missing value for option " + f.prefix,
		Option:  f.prefix,
	}
}

// takeShortFlag removes c from the first single-dash token before the end of
// options that contains it. Grouped flags (-rGv) shrink by one character; a
// token reduced to "-" is consumed.
func (t *tokens) takeShortFlag(c rune) bool {
	if c == 0 {
		return false
	}
	for i := 0; i < t.end; i++ {
		arg := t.args[i]
		if !t.live(i) || len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			continue
		}
		pos := strings.IndexRune(arg[1:], c)
		if pos < 0 {
			continue
		}
		pos++
		arg = arg[:pos] + arg[pos+len(string(c)):]
		t.args[i] = arg
		if arg == "-" {
			t.consume(i)
		}
		return true
	}
	return false
}

// takeLongFlag consumes the first exact "--name" token before the end of options.
func (t *tokens) takeLongFlag(name string) bool {
	if name == "" {
		return false
	}
	want := "--" + name
	for i := 0; i < t.end; i++ {
		if t.live(i) && t.args[i] == want {
			t.consume(i)
			return true
		}
	}
	return false
}

// unknownIdentifier reports the first live dash-prefixed token before the end
// of options. A bare "-" is an ordinary value.
func (t *tokens) unknownIdentifier() *Error {
	for i := 0; i < t.end; i++ {
		arg := t.args[i]
		if !t.live(i) || arg[0] != '-' || arg == "-" {
			continue
		}
		if arg[1] != '-' && utf8.RuneCountInString(arg) > 2 {
			return unknownFlagsError(arg)
		}
		return unknownOptionError(arg)
	}
	return nil
}

// stripEndOfOptions consumes the "--" marker so it is not read as a value.
func (t *tokens) stripEndOfOptions() bool {
	if t.end < len(t.args) {
		t.consume(t.end)
		return true
	}
	return false
}

// nextLive returns the first live token index at or after from, searching the
// whole buffer, or -1.
func (t *tokens) nextLive(from int) int {
	for i := from; i < len(t.args); i++ {
		if t.live(i) {
			return i
		}
	}
	return -1
}

// remaining returns the live tokens in order.
func (t *tokens) remaining() []string {
	var out []string
	for i, arg := range t.args {
		if t.live(i) {
			out = append(out, arg)
		}
	}
	return out
}
