package evictcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Memoize wraps fn so that results are served from c while cached. fn runs
// again for an argument once its result has been evicted.
func Memoize[A comparable, R any](c *Cache[A, R], fn func(A) R) func(A) (R, error) {
	return func(arg A) (R, error) {
		return memoized(c, arg, func() R { return fn(arg) })
	}
}

// MemoizeArgs is Memoize for functions of several arguments. The arguments
// are reduced to a single key with KeyOf.
func MemoizeArgs[R any](c *Cache[uint64, R], fn func(args ...any) R) func(args ...any) (R, error) {
	return func(args ...any) (R, error) {
		key, err := KeyOf(args...)
		if err != nil {
			var zero R
			return zero, err
		}
		return memoized(c, key, func() R { return fn(args...) })
	}
}

func memoized[K comparable, R any](c *Cache[K, R], key K, call func() R) (R, error) {
	value, ok, err := c.Find(key)
	if err != nil || ok {
		return value, err
	}
	value = call()
	if _, err := c.Insert(key, value); err != nil {
		return value, err
	}
	return value, nil
}

// KeyOf hashes args into a cache key. Arguments are encoded with their kind
// and length so that ("ab", "c") and ("a", "bc") differ. Pointers hash by
// address. Slices other than []byte, maps, funcs and chans return ErrKeyType.
func KeyOf(args ...any) (uint64, error) {
	h := xxhash.New()
	var buf []byte
	for i, arg := range args {
		var err error
		buf, err = appendKey(buf[:0], reflect.ValueOf(arg))
		if err != nil {
			return 0, fmt.Errorf("argument %d: %w", i, err)
		}
		if _, err := h.Write(buf); err != nil {
			return 0, err
		}
	}
	return h.Sum64(), nil
}

func appendKey(b []byte, v reflect.Value) ([]byte, error) {
	if !v.IsValid() {
		return append(b, byte(reflect.Invalid)), nil
	}
	b = append(b, byte(v.Kind()))

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1), nil
		}
		return append(b, 0), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(b, v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(v.Float())), nil
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(real(c)))
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(imag(c))), nil
	case reflect.String:
		b = binary.LittleEndian.AppendUint64(b, uint64(v.Len()))
		return append(b, v.String()...), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return nil, fmt.Errorf("%v is not hashable: %w", v.Type(), ErrKeyType)
		}
		b = binary.LittleEndian.AppendUint64(b, uint64(v.Len()))
		return append(b, v.Bytes()...), nil
	case reflect.Array:
		b = binary.LittleEndian.AppendUint64(b, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			var err error
			if b, err = appendKey(b, v.Index(i)); err != nil {
				return nil, err
			}
		}
		return b, nil
	case reflect.Struct:
		b = binary.LittleEndian.AppendUint64(b, uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			var err error
			if b, err = appendKey(b, v.Field(i)); err != nil {
				return nil, err
			}
		}
		return b, nil
	case reflect.Interface:
		return appendKey(b, v.Elem())
	case reflect.Pointer, reflect.UnsafePointer:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Pointer())), nil
	}
	return nil, fmt.Errorf("%v is not hashable: %w", v.Type(), ErrKeyType)
}
