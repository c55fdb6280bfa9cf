package canonical

import (
	"encoding/json"
	"math/big"
)

// Equal reports whether a and b are the same tree. Object key order is
// ignored and numbers compare by value, so 1, 1.0 and 1e0 are equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case json.Number:
		y, ok := b.(json.Number)
		return ok && numbersEqual(x, y)
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.Get(k)
			if !ok || !Equal(x.values[k], yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	x, ok := new(big.Float).SetPrec(256).SetString(string(a))
	if !ok {
		return false
	}
	y, ok := new(big.Float).SetPrec(256).SetString(string(b))
	if !ok {
		return false
	}
	return x.Cmp(y) == 0
}
