// Package sanitizer cleans user input before it is stored or echoed back.
//
// String helpers are small pure functions that can be chained with Apply or
// Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.Trim,
//		sanitizer.StripAngleBrackets,
//		sanitizer.NormalizeUnicode,
//	)
//	name := clean(input)
//
// JSON walks a value produced by encoding/json (maps, slices, strings,
// numbers, booleans and nil) and strips angle brackets from every string,
// array element and object key. The input is never mutated.
package sanitizer
