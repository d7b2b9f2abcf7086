// Package typeexpr parses the type mini-language used in annotation comments.
//
// Four forms are recognized and may be combined:
//
//	string            named type
//	number[]          array of number
//	string?           optional (may also be nil)
//	string|number     union; members never nest, "(a|b)|c" flattens
//
// Parenthesised groups allow arrays of unions, as in "(string|number)[]".
// Names matching a declared generic parameter are re-kinded to
// [KindGeneric] by the comment scanner, not by this package.
package typeexpr
