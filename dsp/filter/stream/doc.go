// Package stream filters a signal one sample per call while the filter
// definition keeps changing between calls.
//
// An [Engine] owns a [cascade.Cascade] and a signal. Each [Engine.ApplyFilter]
// call re-derives the cascade's transfer function coefficients, resizes the
// input and output histories to the current numerator and denominator
// lengths, and evaluates the direct-form difference equation
//
//	a[0]*y[n] = sum_k b[k]*x[n-k] - sum_{k>=1} a[k]*y[n-k]
//
// for the next unread sample. Edits made between calls take effect at the
// next call. The engine is meant to be driven by an interactive timer; it
// starts no goroutines of its own.
//
// All methods are safe for concurrent use. Root and section edits go through
// the engine so that they are serialized with filter steps.
package stream
