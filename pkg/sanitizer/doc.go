// Package sanitizer normalizes guest-supplied strings before validation.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. They never fail; input that cannot be normalized is
// returned trimmed or empty and left for the validator to reject.
package sanitizer
