// Package authz is the authorization engine: it resolves a user's role
// assignments through the explicit inheritance graph into an effective
// permission set, caches the result in two tiers, and evaluates
// permission checks against the closed resource/action matrix.
//
// Checks are a pure resolve-then-decide pipeline and fail closed: any
// infrastructure error during evaluation is a structured denial.
package authz
