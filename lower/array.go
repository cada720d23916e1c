package lower

import "github.com/jscompile/jscn/ast"

func (c *context) lowerArray(a *ast.Array) (any, error) {
	if err := validateCardinal("array", a.Card); err != nil {
		return nil, err
	}

	f := newFragment()
	f.Set("type", "array")

	k := len(a.Items)
	var minFloor *int // forced lower bound on minItems, from a repeat mode

	switch mode := a.Mode.(type) {
	case ast.ModeClosed:
		if k > 0 {
			items, err := c.lowerTypeSlice(a.Items)
			if err != nil {
				return nil, err
			}
			f.Set("items", items)
			if a.Only {
				f.Set("additionalItems", false)
			}
		}
	case ast.ModeZeroOrMore:
		tail, err := c.lowerType(mode.Tail)
		if err != nil {
			return nil, err
		}
		if k == 0 {
			f.Set("items", tail)
		} else {
			items, err := c.lowerTypeSlice(a.Items)
			if err != nil {
				return nil, err
			}
			f.Set("items", items)
			f.Set("additionalItems", tail)
		}
	case ast.ModeOneOrMore:
		tail, err := c.lowerType(mode.Tail)
		if err != nil {
			return nil, err
		}
		if k == 0 {
			f.Set("items", tail)
			floor := 1
			minFloor = &floor
		} else {
			items, err := c.lowerTypeSlice(a.Items)
			if err != nil {
				return nil, err
			}
			f.Set("items", items)
			f.Set("additionalItems", tail)
			floor := k + 1
			minFloor = &floor
		}
	}

	min, max := a.Card.Min, a.Card.Max

	// A Closed tuple's declared cardinal must be consistent with its
	// fixed prefix length: max below k is a contradiction, min below k
	// is silently tightened to k.
	if _, closed := a.Mode.(ast.ModeClosed); closed && k > 0 {
		if max != nil && *max < k {
			return nil, &InvalidCardinalError{Context: "array", Min: min, Max: max}
		}
		if min != nil && *min < k {
			adjusted := k
			min = &adjusted
		}
	}

	if minFloor != nil && (min == nil || *min < *minFloor) {
		min = minFloor
	}

	if min != nil {
		f.Set("minItems", *min)
	}
	if max != nil {
		f.Set("maxItems", *max)
	}
	if a.Unique {
		f.Set("uniqueItems", true)
	}

	return f, nil
}

func (c *context) lowerTypeSlice(items []ast.Type) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, it := range items {
		lowered, err := c.lowerType(it)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}
