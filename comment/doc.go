// Package comment turns "---" annotation comment blocks in Lua source into
// structured [Record] values.
//
// A block is a run of consecutive lines whose first non-blank characters are
// three or more dashes:
//
//	--- Adds two numbers.
//	--- Extra detail becomes a note.
//	---- Nested detail becomes a nested note.
//	--- * So does a list item.
//	--- @param a number the first operand
//	--- @param b? number the second operand, defaults to 0
//	--- @return number sum
//	--- ```lua
//	--- print(add(1, 2))
//	--- ```
//
// # Directives
//
// Directive lines are dispatched in this priority order:
//
//   - @generic Name [: constraint]
//   - @param name type [description]
//   - @return type [description] (also @returns; the last one wins)
//   - any other @tag, which is skipped and logged at debug level with a
//     spelling suggestion when one is close
//
// Types use the [go.jacobcolvin.com/luadoc/typeexpr] grammar. A directive
// with a malformed type is dropped, unless the [Scanner] is strict, in which
// case the error is returned from [Scanner.Scan].
//
// # Free Text
//
// The first free-text line is the record's description. Later lines become
// notes rendered as Markdown list items, nested one level per dash beyond
// the three-dash prefix. Lines between example fences are stored verbatim
// and are never interpreted as directives.
//
// # Scanner Lifecycle
//
// [Scanner.Scan] opens a record on the first annotation line and reports
// false for any other line. While [Scanner.HasCompleteDoc] is true the
// caller decides whether to take the record with [Scanner.CurrentDoc] or to
// drop it with [Scanner.Abandon]; both reset the scanner.
package comment
