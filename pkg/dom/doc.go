// Package dom defines the small document capability interface the signup
// controller is written against. Hosts provide implementations: htmldom keeps
// an in-memory page parsed from markup and jsdom drives the browser DOM.
package dom
