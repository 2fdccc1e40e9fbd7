package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/fastic/model"
)

func TestNegate(t *testing.T) {
	tests := []struct {
		name string
		in   ClassExpression
		want ClassExpression
	}{
		{"atomic", person, Not(person)},
		{"double complement", Not(person), person},
		{"triple complement", Not(Not(person)), Not(person)},
		{"de morgan union", Or(person, Not(female)), And(Not(person), female)},
		{"de morgan intersection", And(person, female), Or(Not(person), Not(female))},
		{"some", Some(hasChild, person), Only(hasChild, Not(person))},
		{"all", Only(hasChild, Not(person)), Some(hasChild, person)},
		{"has value", HasValue(hasChild, ex+"Bob"), Only(hasChild, Not(OneOf(ex+"Bob")))},
		{"min", Min(2, hasChild, person), Max(1, hasChild, person)},
		{"min zero", Min(0, hasChild, person), Nothing},
		{"max", Max(2, hasChild, person), Min(3, hasChild, person)},
		{"exact", Exactly(2, hasChild, person), Or(Max(1, hasChild, person), Min(3, hasChild, person))},
		{"exact zero", Exactly(0, hasChild, person), Min(1, hasChild, person)},
		{"data some", DataSome(age, Datatype(model.XSDInteger)), DataOnly(age, DataNot(Datatype(model.XSDInteger)))},
		{"data all complement", DataOnly(age, DataNot(Datatype(model.XSDInteger))), DataSome(age, Datatype(model.XSDInteger))},
		{"data has value", HasLiteral(age, model.Int(1)), DataOnly(age, DataNot(Literals(model.Int(1))))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negate(tt.in))
		})
	}
}

func TestNNF(t *testing.T) {
	in := Some(hasChild, Not(Or(person, Not(female))))
	assert.Equal(t, Some(hasChild, And(Not(person), female)), NNF(in))

	nested := Min(1, hasChild, Not(Not(person)))
	assert.Equal(t, Min(1, hasChild, person), NNF(nested))

	assert.Equal(t, person, NNF(person))
	assert.Nil(t, Negate(nil))
}
