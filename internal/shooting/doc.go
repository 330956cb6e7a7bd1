// Package shooting locates eigenvalues of boundary value problems by
// bisecting on the qualitative shape of trial solutions.
//
// A trial solution is reduced to a [Signature]: the number of turning points
// and the number of nodes of its samples. [Bisect] keeps three candidates
// A, B=(A+C)/2 and C and narrows the bracket towards the half in which the
// signature changes, stopping when all three signatures agree or the bracket
// halves fall below [Config.Threshold].
//
// The package knows nothing about the equation being solved; callers supply
// an [Evaluator] that integrates and classifies one candidate value.
package shooting
