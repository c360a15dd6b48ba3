// Package place decides where marks land and keeps them from colliding.
//
// The [Registry] is the per-run collision state: a monotonic set of
// claimed (page, vertical-position) slots plus the set of source lines
// that already carry a score. It is created fresh for each document run
// and is never shared — collision state must travel with the run, not
// live in package scope.
//
// The [Engine] turns a resolved rectangle into drawn marks. Criterion
// scores get an underline plus a label, staggered downward when the
// intended position collides and pushed to the right margin when the
// stagger budget runs out. Comments become margin notes, deliberately
// exempt from collision checks. The main score anchors to its question
// heading, trying "2", "Q2", and "Question 2" style variants in order.
package place
