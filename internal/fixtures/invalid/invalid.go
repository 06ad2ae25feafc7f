// Package invalid declares every kind of marker mistake the resolver reports.
// It compiles; the mistakes are only visible to the generator.
package invalid

import "rowmapper-generator/internal/fixtures/invalid/base"

//rowmapper:mappable
var Loose = 1

//rowmapper:mappable
func Helper() {}

// Orphan carries a column marker without being mappable.
//
//rowmapper:column orphan
type Orphan struct{}

// Status is not a struct.
//
//rowmapper:mappable
type Status int

// Box is generic.
//
//rowmapper:mappable
type Box[T any] struct {
	V T `column:"v"`
}

// Account collects member level mistakes.
//
//rowmapper:mappable
//rowmapper:column account
type Account struct {
	base.Secret
	*base.Audit

	Email  string   `column:"email"`
	Alias  string   `column:"email"`
	Tags   []string `column:"tags"`
	Code   string   `column:""`
	Flag   bool     `column:"flag,unique"`
	Legacy string   //rowmapper:column legacy

	mood string
}

func NewAccount(name string) *Account {
	return &Account{Email: name}
}

//rowmapper:mappable
func (a *Account) Describe() string {
	return a.Email + a.mood
}

//rowmapper:column mood
func (a Account) SetMood(v string) {
	a.mood = v
}
