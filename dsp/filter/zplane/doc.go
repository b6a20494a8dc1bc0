// Package zplane holds the editable zero/pole configuration of a filter.
//
// A [RootSet] is what an interactive z-plane editor manipulates: roots are
// added, dragged, picked by proximity and deleted through stable [Handle]
// values. Roots added with reflection are kept as conjugate pairs so that the
// resulting polynomials have real coefficients.
//
// [FromCoefficients] goes the other way and recovers an editable set from
// transfer function coefficients.
package zplane
