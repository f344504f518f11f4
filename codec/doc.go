// Package codec bridges host text and the interpreter's two text
// representations.
//
// Narrow text is a NUL-terminated sequence of locale-encoded bytes (the
// embedded interpreter uses a UTF-8 locale). Wide text is a NUL-terminated
// sequence of 4-byte little-endian code points, matching the platform wide
// character the interpreter was built with.
//
// EncodeToNarrow and DecodeToWide call the interpreter's locale converters
// and hand the resulting allocation to the matching scoped buffer type:
// narrow conversions live in the tracked domain, wide conversions in the raw
// domain, mirroring the domains the converters allocate from.
//
// NarrowView and WideView accept whichever representation the caller has and
// convert lazily, owning the conversion buffer for their lifetime:
//
//	v, err := codec.NarrowFromRunes(cv, []rune("héllo"))
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//	use(v.Ptr()) // valid until Close
//
// Characters the locale cannot represent are a defined failure
// (errors.KindEncoding), never a truncated or garbled buffer.
package codec
