package lower

import (
	"github.com/kaptinlin/jsonpointer"

	"github.com/jscompile/jscn/ast"
)

func (c *context) lowerObject(o *ast.Object) (any, error) {
	if err := validateCardinal("object", o.Card); err != nil {
		return nil, err
	}

	f := newFragment()
	f.Set("type", "object")

	if len(o.Properties) > 0 {
		props := newFragment()
		var required []any
		for _, p := range o.Properties {
			lowered, err := c.lowerType(p.Value)
			if err != nil {
				return nil, err
			}
			props.Set(p.Key, lowered)
			if !p.Optional && !isForbiddenKeyword(p.Value) {
				required = append(required, p.Key)
			}
		}
		f.Set("properties", props)
		if len(required) > 0 {
			f.Set("required", required)
		}
	}

	if err := c.lowerObjectRestriction(f, o.Restriction); err != nil {
		return nil, err
	}

	if o.Card.Min != nil {
		f.Set("minProperties", *o.Card.Min)
	}
	if o.Card.Max != nil {
		f.Set("maxProperties", *o.Card.Max)
	}

	return f, nil
}

func (c *context) lowerObjectRestriction(f *Fragment, restriction ast.ObjectRestriction) error {
	switch r := restriction.(type) {
	case ast.RestrictionNone:
		return nil
	case ast.RestrictionOnlyListed:
		f.Set("additionalProperties", false)
		return nil
	case ast.RestrictionOnlyNames:
		nc, err := c.lowerNameConstraint(r.Names)
		if err != nil {
			return err
		}
		f.Set("propertyNames", nc)
		return nil
	case ast.RestrictionOnlyKV:
		if r.Wildcard {
			val, err := c.lowerType(r.Value)
			if err != nil {
				return err
			}
			f.Set("additionalProperties", val)
			return nil
		}
		nc, err := c.lowerNameConstraint(r.Names)
		if err != nil {
			return err
		}
		f.Set("propertyNames", nc)
		val, err := c.lowerType(r.Value)
		if err != nil {
			return err
		}
		f.Set("additionalProperties", val)
		return nil
	}
	panic("lower: unhandled ast.ObjectRestriction")
}

// lowerNameConstraint lowers the regex-or-reference that restricts
// extra property names; reference resolution follows the same
// reachability bookkeeping as a plain <id> atom.
func (c *context) lowerNameConstraint(nc ast.NameConstraint) (any, error) {
	if nc.IsRef {
		if _, ok := c.defs.Get(nc.RefName); !ok {
			return nil, &UnresolvedReferenceError{Name: nc.RefName}
		}
		c.reached[nc.RefName] = true
		f := newFragment()
		f.Set("$ref", "#"+jsonpointer.Format("definitions", nc.RefName))
		return f, nil
	}
	f := newFragment()
	f.Set("type", "string")
	f.Set("pattern", nc.Pattern)
	return f, nil
}

func isForbiddenKeyword(t ast.Type) bool {
	kw, ok := t.(*ast.Keyword)
	return ok && kw.Name == ast.KeywordForbidden
}
