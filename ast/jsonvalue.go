package ast

// jsonValueEqual compares two decoded JSON values (nil, bool, float64,
// string, []any, *JSONObject) for structural equality, preserving the
// key order produced by the lexer's literal decoder.
func jsonValueEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *JSONObject:
		bv, ok := b.(*JSONObject)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		bPair := bv.Oldest()
		for aPair := av.Oldest(); aPair != nil; aPair = aPair.Next() {
			if bPair == nil || aPair.Key != bPair.Key || !jsonValueEqual(aPair.Value, bPair.Value) {
				return false
			}
			bPair = bPair.Next()
		}
		return true
	default:
		return false
	}
}
