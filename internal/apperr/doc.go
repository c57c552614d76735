// Package apperr defines the closed set of API error categories and the
// Classifier that collapses every failure raised while serving a request into
// one of them. Classification happens once, at the handler boundary.
package apperr
