// Package value implements the Logo Value model: a word (string) or a list
// of values, recursively. A Value is immutable except through the in-place
// list mutators Set/SetFirst, which write through the underlying slice so
// every variable holding the list observes the change.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/mbianchi/mlogo/pkg/logoerr"
)

// Kind discriminates the two Value variants.
type Kind int

const (
	Word Kind = iota
	List
)

// Value is a tagged word-or-list.
type Value struct {
	kind  Kind
	word  string
	items []Value
}

// NewWord builds a word Value.
func NewWord(s string) Value {
	return Value{kind: Word, word: s}
}

// NewList builds a list Value from the given elements.
func NewList(items ...Value) Value {
	return Value{kind: List, items: items}
}

// NewListFrom wraps an existing slice without copying, so callers that want
// aliasing semantics (as Set/SetFirst rely on) can opt in explicitly.
func NewListFrom(items []Value) Value {
	return Value{kind: List, items: items}
}

// Bool renders a boolean as the canonical TRUE/FALSE word.
func Bool(b bool) Value {
	if b {
		return NewWord("TRUE")
	}
	return NewWord("FALSE")
}

func (v Value) IsWord() bool { return v.kind == Word }
func (v Value) IsList() bool { return v.kind == List }

// IsEmpty reports an empty word or a list with no elements. The empty word
// and the empty list are distinct values that are both empty.
func (v Value) IsEmpty() bool {
	if v.kind == Word {
		return v.word == ""
	}
	return len(v.items) == 0
}

// AsWord returns the underlying string, or a TypeError if v is a list.
func (v Value) AsWord() (string, error) {
	if v.kind != Word {
		return "", &logoerr.TypeError{Expected: "word", Got: "list"}
	}
	return v.word, nil
}

// AsList returns the underlying elements, or a TypeError if v is a word.
func (v Value) AsList() ([]Value, error) {
	if v.kind != List {
		return nil, &logoerr.TypeError{Expected: "list", Got: "word"}
	}
	return v.items, nil
}

// AsFloat coerces a word to a number. Only words are numeric.
func (v Value) AsFloat() (float64, error) {
	if v.kind != Word {
		return 0, &logoerr.TypeError{Expected: "number", Got: "list"}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.word), 64)
	if err != nil {
		return 0, &logoerr.TypeError{Expected: "number", Got: v.word}
	}
	return f, nil
}

// AsInt truncates AsFloat towards zero.
func (v Value) AsInt() (int64, error) {
	f, err := v.AsFloat()
	if err != nil {
		return 0, err
	}
	return int64(math.Trunc(f)), nil
}

// AsUint is AsInt restricted to the non-negative range, used by the
// index-taking builtins (item, setitem).
func (v Value) AsUint() (uint64, error) {
	i, err := v.AsInt()
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, &logoerr.TypeError{Expected: "non-negative number", Got: v.word}
	}
	return uint64(i), nil
}

// AsBool coerces a word to a boolean: the empty word, the word 0 and the
// word false (case-insensitively) are false, every other non-empty word is
// true. Lists are not booleans.
func (v Value) AsBool() (bool, error) {
	if v.kind != Word {
		return false, &logoerr.TypeError{Expected: "boolean", Got: "list"}
	}
	if v.word == "" || v.word == "0" || strings.EqualFold(v.word, "false") {
		return false, nil
	}
	return true, nil
}

// Raw renders the value the way PRINT/TYPE do: a word verbatim, or a list's
// elements space-joined with the OUTERMOST pair of brackets suppressed but
// every nested list still bracketed (so `print [1 [2 3] 4]` reads
// "1 [2 3] 4", not "1 2 3 4"). This is also what the REPEAT builtin calls
// to turn a list-literal body back into source text
// to re-lex and re-parse at call time.
func (v Value) Raw() string {
	if v.kind == Word {
		return v.word
	}
	parts := make([]string, len(v.items))
	for i, e := range v.items {
		parts[i] = e.Show()
	}
	return strings.Join(parts, " ")
}

// Show renders the value the way SHOW does: lists are bracketed.
func (v Value) Show() string {
	var sb strings.Builder
	v.writeShow(&sb)
	return sb.String()
}

func (v Value) writeShow(sb *strings.Builder) {
	if v.kind == Word {
		sb.WriteString(v.word)
		return
	}
	sb.WriteByte('[')
	for i, e := range v.items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		e.writeShow(sb)
	}
	sb.WriteByte(']')
}

// Equal is structural equality, recursive over list elements.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == Word {
		return v.word == other.word
	}
	if len(v.items) != len(other.items) {
		return false
	}
	for i := range v.items {
		if !v.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Less implements BEFOREP's ordering: numeric comparison when both sides
// parse as numbers, otherwise lexicographic word comparison. Lists are never
// ordered.
func (v Value) Less(other Value) (bool, error) {
	if v.kind != Word || other.kind != Word {
		return false, &logoerr.TypeError{Expected: "word", Got: "list"}
	}
	if vf, err1 := v.AsFloat(); err1 == nil {
		if of, err2 := other.AsFloat(); err2 == nil {
			return vf < of, nil
		}
	}
	return v.word < other.word, nil
}

// Concat joins two values: word+word concatenates, list+list appends, and
// a word mixed with a list is pushed onto the back of that list regardless
// of which operand it was.
func Concat(a, b Value) Value {
	switch {
	case a.kind == Word && b.kind == Word:
		return NewWord(a.word + b.word)
	case a.kind == List && b.kind == List:
		out := make([]Value, 0, len(a.items)+len(b.items))
		out = append(out, a.items...)
		out = append(out, b.items...)
		return NewListFrom(out)
	case a.kind == List && b.kind == Word:
		out := make([]Value, len(a.items), len(a.items)+1)
		copy(out, a.items)
		return NewListFrom(append(out, b))
	default: // a.kind == Word && b.kind == List
		out := make([]Value, len(b.items), len(b.items)+1)
		copy(out, b.items)
		return NewListFrom(append(out, a))
	}
}

// Fput pushes x onto the front of a list, or prepends one word onto
// another.
func Fput(x, collection Value) Value {
	if collection.kind == List {
		out := make([]Value, 0, len(collection.items)+1)
		out = append(out, x)
		out = append(out, collection.items...)
		return NewListFrom(out)
	}
	w, _ := x.AsWord()
	return NewWord(w + collection.word)
}

// Lput pushes x onto the back of a list, or appends to a word (LPUT/Lput).
func Lput(x, collection Value) Value {
	if collection.kind == List {
		out := make([]Value, len(collection.items), len(collection.items)+1)
		copy(out, collection.items)
		return NewListFrom(append(out, x))
	}
	w, _ := x.AsWord()
	return NewWord(collection.word + w)
}

// At indexes a word (by rune) or a list (by element), 0-based.
func (v Value) At(i uint64) (Value, error) {
	if v.kind == Word {
		r := []rune(v.word)
		if i >= uint64(len(r)) {
			return Value{}, &logoerr.TypeError{Expected: "valid index", Got: strconv.FormatUint(i, 10)}
		}
		return NewWord(string(r[i])), nil
	}
	if i >= uint64(len(v.items)) {
		return Value{}, &logoerr.TypeError{Expected: "valid index", Got: strconv.FormatUint(i, 10)}
	}
	return v.items[i], nil
}

// Front returns the first character or element.
func (v Value) Front() (Value, error) {
	return v.At(0)
}

// Back returns the last character or element.
func (v Value) Back() (Value, error) {
	if v.IsEmpty() {
		return Value{}, &logoerr.TypeError{Expected: "non-empty word or list", Got: "empty"}
	}
	if v.kind == Word {
		r := []rune(v.word)
		return NewWord(string(r[len(r)-1])), nil
	}
	return v.items[len(v.items)-1], nil
}

// ButFirst returns everything but the first character or element.
func (v Value) ButFirst() (Value, error) {
	if v.IsEmpty() {
		return Value{}, &logoerr.TypeError{Expected: "non-empty word or list", Got: "empty"}
	}
	if v.kind == Word {
		r := []rune(v.word)
		return NewWord(string(r[1:])), nil
	}
	return NewListFrom(v.items[1:]), nil
}

// ButLast returns everything but the last character or element.
func (v Value) ButLast() (Value, error) {
	if v.IsEmpty() {
		return Value{}, &logoerr.TypeError{Expected: "non-empty word or list", Got: "empty"}
	}
	if v.kind == Word {
		r := []rune(v.word)
		return NewWord(string(r[:len(r)-1])), nil
	}
	return NewListFrom(v.items[:len(v.items)-1]), nil
}

// Set mutates the element at index i in place. Because Value wraps a Go
// slice, this mutates the same backing array the caller's variable holds,
// which is what gives SETITEM its destructive effect even though it is
// declared a non-returning procedure.
func (v Value) Set(i uint64, nv Value) error {
	if v.kind != List {
		return &logoerr.TypeError{Expected: "list", Got: "word"}
	}
	if i >= uint64(len(v.items)) {
		return &logoerr.TypeError{Expected: "valid index", Got: strconv.FormatUint(i, 10)}
	}
	v.items[i] = nv
	return nil
}

// SetFirst is Set(0, nv).
func (v Value) SetFirst(nv Value) error {
	return v.Set(0, nv)
}

// In reports whether needle is contained in v: substring test when v is a
// word, element-equality membership when v is a list. The receiver is the
// haystack, matching MemberP's arg1.in(arg0) call shape.
func (v Value) In(needle Value) bool {
	if v.kind == Word {
		if needle.kind != Word {
			return false
		}
		return strings.Contains(v.word, needle.word)
	}
	for _, e := range v.items {
		if e.Equal(needle) {
			return true
		}
	}
	return false
}

// IsNumber reports whether v parses as a number (NUMBERP).
func (v Value) IsNumber() bool {
	_, err := v.AsFloat()
	return err == nil
}

// FormatFloat renders a float the way the arithmetic builtins do: if the
// result is within 1e-5 of its truncation, print it as an integer, otherwise
// print the float at 6 significant digits, so 1.1+2.2 prints as 3.3, not
// the shortest round-trippable 3.3000000000000003.
func FormatFloat(f float64) string {
	rounded := math.Trunc(f)
	if math.Abs(f-rounded) < 1e-5 {
		return strconv.FormatInt(int64(rounded), 10)
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// NewNumber builds a word Value from a float using FormatFloat.
func NewNumber(f float64) Value {
	return NewWord(FormatFloat(f))
}
