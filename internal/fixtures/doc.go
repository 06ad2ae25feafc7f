// Package fixtures holds small packages loaded by the scanner and pass tests.
// Nothing outside tests imports them.
package fixtures
