package expr

// NNF returns ce in negation normal form: complements are pushed inwards until
// they only apply to named classes and enumerations. The result denotes the
// same set under closed-world negation.
func NNF(ce ClassExpression) ClassExpression {
	switch c := ce.(type) {
	case ObjectComplementOf:
		return Negate(c.Operand)
	case ObjectUnionOf:
		return Or(nnfAll(c.Operands)...)
	case ObjectIntersectionOf:
		return And(nnfAll(c.Operands)...)
	case ObjectSomeValuesFrom:
		return Some(c.Property, NNF(c.Filler))
	case ObjectAllValuesFrom:
		return Only(c.Property, NNF(c.Filler))
	case ObjectMinCardinality:
		return Min(c.Cardinality, c.Property, NNF(c.Filler))
	case ObjectMaxCardinality:
		return Max(c.Cardinality, c.Property, NNF(c.Filler))
	case ObjectExactCardinality:
		return Exactly(c.Cardinality, c.Property, NNF(c.Filler))
	default:
		return ce
	}
}

// Negate returns the negation normal form of ¬ce. A double complement collapses.
func Negate(ce ClassExpression) ClassExpression {
	switch c := ce.(type) {
	case ObjectComplementOf:
		return NNF(c.Operand)
	case ObjectUnionOf:
		return And(negateAll(c.Operands)...)
	case ObjectIntersectionOf:
		return Or(negateAll(c.Operands)...)
	case ObjectSomeValuesFrom:
		return Only(c.Property, Negate(c.Filler))
	case ObjectAllValuesFrom:
		return Some(c.Property, Negate(c.Filler))
	case ObjectHasValue:
		return Only(c.Property, Not(OneOf(c.Individual)))
	case ObjectMinCardinality:
		if c.Cardinality == 0 {
			return Nothing
		}
		return Max(c.Cardinality-1, c.Property, NNF(c.Filler))
	case ObjectMaxCardinality:
		return Min(c.Cardinality+1, c.Property, NNF(c.Filler))
	case ObjectExactCardinality:
		filler := NNF(c.Filler)
		if c.Cardinality == 0 {
			return Min(1, c.Property, filler)
		}
		return Or(Max(c.Cardinality-1, c.Property, filler), Min(c.Cardinality+1, c.Property, filler))
	case DataSomeValuesFrom:
		return DataOnly(c.Property, negateRange(c.Range))
	case DataAllValuesFrom:
		return DataSome(c.Property, negateRange(c.Range))
	case DataHasValue:
		return DataOnly(c.Property, DataNot(Literals(c.Value)))
	default:
		if ce == nil {
			return nil
		}
		return Not(ce)
	}
}

func nnfAll(ops []ClassExpression) []ClassExpression {
	out := make([]ClassExpression, len(ops))
	for i, op := range ops {
		out[i] = NNF(op)
	}
	return out
}

func negateAll(ops []ClassExpression) []ClassExpression {
	out := make([]ClassExpression, len(ops))
	for i, op := range ops {
		out[i] = Negate(op)
	}
	return out
}

// negateRange complements r. Operands of data unions and intersections are
// left as they are.
func negateRange(r DataRange) DataRange {
	if d, ok := r.(DataComplementOf); ok {
		return d.Range
	}
	if r == nil {
		return nil
	}
	return DataNot(r)
}
