package evictcache

import (
	"cmp"
	"fmt"
	"reflect"
)

// keyCheck validates keys the first time an operation needs to hash or
// order them. Keys free of interfaces are checked by the compiler; keys that
// may hold a dynamic value, or keys ordered without a comparator, need work
// here.
type keyCheck struct {
	dynamic bool // K is an interface type
	ordered bool // the engine orders keys by kind, not by a comparator
	static  bool // every key passes, nothing to check
	kind    reflect.Kind
	// dynamic type every key must share while the cache is non-empty
	keyType reflect.Type
}

func newKeyCheck[K comparable](ordered bool) *keyCheck {
	t := reflect.TypeFor[K]()
	dynamic := t.Kind() == reflect.Interface
	return &keyCheck{
		dynamic: dynamic,
		ordered: ordered,
		static:  !dynamic && ((ordered && orderedKind(t.Kind())) || (!ordered && !holdsInterface(t))),
		kind:    t.Kind(),
	}
}

// check returns ErrKeyType if key cannot be used by the engine. empty reports
// whether the cache currently holds no keys; inserting into an empty cache
// fixes the dynamic key type for ordered engines.
func (kc *keyCheck) check(key any, empty, inserting bool) error {
	if kc.ordered && !kc.dynamic {
		if !orderedKind(kc.kind) {
			return fmt.Errorf("%T keys are not ordered: %w", key, ErrKeyType)
		}
		return nil
	}

	v := reflect.ValueOf(key)
	if !kc.ordered {
		if v.IsValid() && !v.Comparable() {
			return fmt.Errorf("%T keys are not hashable: %w", key, ErrKeyType)
		}
		return nil
	}

	if !v.IsValid() || !orderedKind(v.Kind()) {
		return fmt.Errorf("%T keys are not ordered: %w", key, ErrKeyType)
	}
	switch {
	case empty:
		if inserting {
			kc.keyType = v.Type()
		}
	case v.Type() != kc.keyType:
		return fmt.Errorf("cannot order %v keys against %v keys: %w", v.Type(), kc.keyType, ErrKeyType)
	}
	return nil
}

// holdsInterface reports whether values of t can carry a dynamic value, and
// so may turn out unhashable at run time.
func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

func orderedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

// compareKeys orders two keys already accepted by keyCheck.
func compareKeys[K comparable](a, b K) int {
	switch x := any(a).(type) {
	case int:
		return cmp.Compare(x, any(b).(int))
	case int64:
		return cmp.Compare(x, any(b).(int64))
	case uint64:
		return cmp.Compare(x, any(b).(uint64))
	case float64:
		return cmp.Compare(x, any(b).(float64))
	case string:
		return cmp.Compare(x, any(b).(string))
	}

	va, vb := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float())
	case reflect.String:
		return cmp.Compare(va.String(), vb.String())
	}
	panic(fmt.Sprintf("evictcache: comparing unordered keys of type %T", a))
}
