// Package cascade composes a primary zero/pole filter with a chain of
// first-order all-pass sections.
//
// The cascade is the series connection of its filters, so its transfer
// function is their product: zeros and poles concatenate, gains multiply,
// magnitudes multiply and phases add. [Cascade.Response] evaluates the
// expanded polynomials directly, [Cascade.ComposedResponse] composes the
// per-filter responses; both agree up to rounding.
package cascade
