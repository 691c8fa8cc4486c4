// Package godslist exposes a rowvec.Vec through the gods lists.List
// interface so it can stand in for arraylist or doublylinkedlist.
//
// Index handling follows gods: out-of-range Remove, Swap, Insert and Set
// are silently ignored, and Insert or Set at Size() appends.
package godslist

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists"
	"github.com/emirpasic/gods/utils"

	"github.com/orizon-lang/rowvec"
)

var _ lists.List = (*List)(nil)

// List adapts a *rowvec.Vec[any] to lists.List.
type List struct {
	vec *rowvec.Vec[any]
}

// New instantiates a new list and adds the passed values, if any.
func New(values ...interface{}) *List {
	l := &List{vec: rowvec.New[any]()}
	l.Add(values...)
	return l
}

// Wrap adapts an existing Vec. The list and the Vec share storage.
func Wrap(v *rowvec.Vec[any]) *List {
	return &List{vec: v}
}

// Vec returns the underlying container.
func (l *List) Vec() *rowvec.Vec[any] { return l.vec }

// Add appends values at the end of the list.
func (l *List) Add(values ...interface{}) {
	l.vec.ExtendBack(values...)
}

// Get returns the element at index. Second return parameter is true if
// index is within bounds.
func (l *List) Get(index int) (interface{}, bool) {
	return l.vec.Get(index)
}

// Remove removes the element at the given index.
func (l *List) Remove(index int) {
	l.vec.Remove(index)
}

// Contains reports whether every value is present. With no values it is true.
// Values are compared with ==.
func (l *List) Contains(values ...interface{}) bool {
	for _, want := range values {
		found := false
		for x := range l.vec.Values() {
			if x == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IndexOf returns the index of value, or -1 if absent.
func (l *List) IndexOf(value interface{}) int {
	for i, x := range l.vec.All() {
		if x == value {
			return i
		}
	}
	return -1
}

// Values returns all elements in order.
func (l *List) Values() []interface{} {
	return l.vec.ToSlice()
}

// Empty returns true if list does not contain any elements.
func (l *List) Empty() bool { return l.vec.IsEmpty() }

// Size returns number of elements within the list.
func (l *List) Size() int { return l.vec.Len() }

// Clear removes all elements from the list.
func (l *List) Clear() { l.vec.Clear() }

// Sort sorts values in place using comparator.
func (l *List) Sort(comparator utils.Comparator) {
	if l.vec.Len() < 2 {
		return
	}
	rowvec.SortFunc(l.vec, func(a, b any) int { return comparator(a, b) })
}

// Swap swaps the two values at the specified positions.
func (l *List) Swap(i, j int) {
	if l.withinRange(i) && l.withinRange(j) {
		l.vec.Swap(i, j)
	}
}

// Insert inserts values at index, shifting the value at that position (if
// any) and any subsequent elements to the right.
func (l *List) Insert(index int, values ...interface{}) {
	if !l.withinRange(index) {
		if index == l.vec.Len() {
			l.Add(values...)
		}
		return
	}
	for i, x := range values {
		l.vec.Insert(index+i, x)
	}
}

// Set replaces the value at index.
func (l *List) Set(index int, value interface{}) {
	if !l.withinRange(index) {
		if index == l.vec.Len() {
			l.Add(value)
		}
		return
	}
	l.vec.Set(index, value)
}

// String returns a string representation of container.
func (l *List) String() string {
	str := "RowVecList\n"
	values := make([]string, 0, l.vec.Len())
	for x := range l.vec.Values() {
		values = append(values, fmt.Sprintf("%v", x))
	}
	str += strings.Join(values, ", ")
	return str
}

func (l *List) withinRange(index int) bool {
	return index >= 0 && index < l.vec.Len()
}
