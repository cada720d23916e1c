package lower

import "github.com/jscompile/jscn/ast"

// lowerConditional lowers `if C0 then T0 (elif Ci then Ti)* (else E)?`
// right-associatively: each elif arm nests inside the preceding
// branch's "else". A missing else omits the key entirely rather than
// defaulting to any particular schema.
func (c *context) lowerConditional(cond *ast.Conditional) (any, error) {
	return c.lowerCondBranch(cond.Branches, 0, cond.Else)
}

func (c *context) lowerCondBranch(branches []ast.CondBranch, idx int, elseType ast.Type) (any, error) {
	branch := branches[idx]

	condFrag, err := c.lowerType(branch.Cond)
	if err != nil {
		return nil, err
	}
	thenFrag, err := c.lowerType(branch.Then)
	if err != nil {
		return nil, err
	}

	f := newFragment()
	f.Set("if", condFrag)
	f.Set("then", thenFrag)

	if idx+1 < len(branches) {
		inner, err := c.lowerCondBranch(branches, idx+1, elseType)
		if err != nil {
			return nil, err
		}
		f.Set("else", inner)
		return f, nil
	}

	if elseType != nil {
		elseFrag, err := c.lowerType(elseType)
		if err != nil {
			return nil, err
		}
		f.Set("else", elseFrag)
	}
	return f, nil
}
