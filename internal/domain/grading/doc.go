// Package grading computes aggregates over a student's derived view:
// credit-weighted GPA, grade/credit listings, plain averages and the weekly
// schedule projection. All functions are pure and never divide by zero.
package grading
