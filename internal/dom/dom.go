// Package dom defines the minimal document contract the tour engine needs
// from its host UI, and resolves step locators against it. A production
// embedding adapts its widget tree or DOM bridge to Document; tests and the
// preview CLI use the YAML page snapshot implementation.
package dom

// Element is a handle to one resolved UI element.
type Element interface {
	// Selector returns the selector the element was resolved with.
	Selector() string

	// Activate simulates a click; the resolver uses it on reveal controls to
	// open collapsed containers.
	Activate()
}

// Document is the host page. Query returns the first element currently
// matching the single selector, or ok=false; zero matches is an expected
// condition, never an error.
type Document interface {
	Query(selector string) (el Element, ok bool)
	ViewportWidth() int
}
