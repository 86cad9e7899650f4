package layout

import (
	"github.com/sugigraph/layout/pkg/layouterr"
)

// verifyConst wraps f so that, the first time it is invoked for a given
// key, it calls the underlying accessor a second time and records a
// violation (once, into *violated) if the two calls disagree. Later
// calls for the same key pass straight through. This is the
// [Config.WithStrictAccessors] debug check: it trades one extra
// accessor call per distinct key for a guarantee that "called at most
// once per node" callers really can treat the result as constant.
func verifyConst[K comparable, V comparable](name string, f func(K) V, violated *error) func(K) V {
	checked := make(map[K]bool)
	return func(key K) V {
		v := f(key)
		if !checked[key] {
			checked[key] = true
			if v2 := f(key); v2 != v && *violated == nil {
				*violated = layouterr.New(layouterr.InvalidConfig,
					"%s accessor is not constant: got %v then %v for the same input %v", name, v, v2, key)
			}
		}
		return v
	}
}

// sizePair is the comparable key/value type used to run (width, height)
// accessors through [verifyConst], which requires a comparable V.
type sizePair struct{ w, h float64 }

// verifyConstSize is [verifyConst] specialized to a node-keyed
// (width, height) accessor such as [NodeSizeFunc].
func verifyConstSize(name string, f func(string) (float64, float64), violated *error) func(string) (float64, float64) {
	wrapped := verifyConst(name, func(id string) sizePair {
		w, h := f(id)
		return sizePair{w, h}
	}, violated)
	return func(id string) (float64, float64) {
		s := wrapped(id)
		return s.w, s.h
	}
}

// verifyConstDummySize is [verifyConst] specialized to the nullary dummy
// size accessor ([DummySizeFunc]): it must return the same pair on
// every call, so the single key is the unit key.
func verifyConstDummySize(f func() (float64, float64), violated *error) func() (float64, float64) {
	wrapped := verifyConst("dummySize", func(struct{}) sizePair {
		w, h := f()
		return sizePair{w, h}
	}, violated)
	return func() (float64, float64) {
		s := wrapped(struct{}{})
		return s.w, s.h
	}
}

// pairKey is the comparable key used to run two-string-argument
// accessors such as [coord.VertWeakFunc] through [verifyConst].
type pairKey struct{ a, b string }

// verifyConstPair is [verifyConst] specialized to a two-string-argument
// accessor such as [coord.VertWeakFunc].
func verifyConstPair(name string, f func(string, string) float64, violated *error) func(string, string) float64 {
	wrapped := verifyConst(name, func(k pairKey) float64 { return f(k.a, k.b) }, violated)
	return func(a, b string) float64 { return wrapped(pairKey{a, b}) }
}
