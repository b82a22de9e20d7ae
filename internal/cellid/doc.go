// Package cellid converts S2 cell identifiers to and from their human-facing
// forms.
//
// # Representations
//
//   - ID – the raw 64-bit identifier. The layer attaches no arithmetic meaning
//     to it; geometry lives in github.com/golang/geo/s2.
//   - Token – a short hexadecimal string with trailing zero nibbles removed
//     ("89c25c" for 0x89c25c0000000000, "X" for 0).
//   - LngLat – a coordinate pair in degrees, normalised before encoding.
//
// # Missing values
//
// Missing is a reserved ID that never names a valid cell. Batch code in
// internal/vector propagates it without calling any conversion.
//
// # Validity
//
// Every 64-bit pattern has a token, but only some patterns are valid cells.
// ID.IsValid applies the structural rules of the S2 hierarchy (face below 6,
// lowest set bit at an even position) and is stricter than "has a token".
package cellid
