// Package extract pairs Lua annotation comments with the function
// definitions that follow them.
//
// An [Extractor] drives a [comment.Scanner] line by line. When a comment
// block ends, the next line (or the first function line after a small number
// of blank lines, see [WithLookahead]) is matched with [signature.Extract].
// Matching blocks become [Function] values; other blocks are dropped.
//
//	e := extract.New(extract.WithPrivate(true))
//	fns, err := e.ExtractBytes("init.lua", data)
//
// [ParseFiles] runs the same extraction over many files concurrently and
// returns one [Result] per file, in input order. [Schema] describes the JSON
// encoding of the output.
package extract
