package skiptree

import "reflect"

// isNilArg reports whether v is a "null" argument: Map forbids a nil key
// or nil value, a concept that only applies to K/V instantiations that
// can actually hold nil (pointers, interfaces, slices, maps, chans,
// funcs). Value types such as int or string can never be nil, so this
// always reports false for them, which is correct since the Go compiler
// already rejects passing a literal nil for those.
func isNilArg[T any](v T) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
