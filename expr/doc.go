// Package expr is the class expression algebra evaluated by the retrieval engine.
//
// Class expressions and data ranges are closed sum types: the interfaces carry
// an unexported marker method, so every implementation lives here and
// consumers can switch exhaustively on the concrete type or on Kind().
//
// # Building Expressions
//
//	hasChild := model.ObjectProperty("http://example.org/hasChild").Expression()
//	person := expr.Class("http://example.org/Person")
//
//	parents := expr.Some(hasChild, person)                 // ∃hasChild.Person
//	childless := expr.And(person, expr.Not(parents))      // Person ⊓ ¬∃hasChild.Person
//	adults := expr.DataSome(age, expr.MinInclusive(model.Int(18)))
//
// # Syntax
//
// String renders OWL 2 functional-style syntax with full IRIs. The rendering
// is the structural identity of an expression: two expressions with the same
// String are the same expression. Format abbreviates with a prefix table and
// Parse reads either form back.
package expr
