// Package model defines the vocabulary types shared by the retrieval engine,
// the expression algebra and the base reasoners.
//
// # Names
//
//   - Individual, Class, ObjectProperty, DataProperty, Datatype: full IRIs
//   - ObjectPropertyExpression: a named object property or its inverse
//
// # Literals
//
// Literal carries a datatype IRI and a decoded native value. Literals are
// comparable with == and can be used as map keys:
//
//	age := model.Int(30)
//	lit, err := model.ParseLiteral("30", model.XSDInt)
//	c, err := model.Compare(age, lit) // 0
//
// # Prefixes
//
// Prefixes expands and abbreviates IRIs for the functional-style syntax:
//
//	p := model.DefaultPrefixes()
//	p.Set("ex", "http://example.org/")
//	p.Abbreviate("http://example.org/Alice") // "ex:Alice"
package model
