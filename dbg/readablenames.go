package dbg

import (
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Log lines about mergers and tiles are easier to follow with a name like
// "BriskOtter" than with a pointer address. Names are handed out on first
// request and remembered for the life of the process; nothing is ever
// forgotten, so keep calls behind a logger check.
var names = struct {
	sync.Mutex
	byValue map[interface{}]string
}{byValue: make(map[interface{}]string)}

func init() {
	// Names depend on request order anyway. Seeding randomly keeps anyone from
	// reading meaning into a name across runs.
	petname.NonDeterministicMode()
}

// Name returns the label assigned to obj, assigning a fresh one on first use.
// obj must be comparable. Nil values, typed or not, are all "Ø".
func Name(obj interface{}) string {
	if isNil(obj) {
		return "Ø"
	}

	names.Lock()
	defer names.Unlock()
	name, ok := names.byValue[obj]
	if !ok {
		name = capitalize(petname.Adjective()) + capitalize(petname.Name())
		names.byValue[obj] = name
	}
	return name
}

func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
