// Package mapping reads and checks binding lock files.
//
// A lock file is the YAML manifest of a reviewed generation pass. Once it is
// committed, later passes compare their resolved bindings against it so a
// renamed field, a new setter or a dropped column cannot silently change what
// a mapper reads or writes.
//
// # Schema Overview
//
//	version: "1"
//	classes:
//	  - type: example.com/app/people.Customer
//	    mapper: CustomerMapper
//	    package: example.com/app/people
//	    constructor: NewCustomer
//	    ancestors:
//	      - example.com/app/people.Entity
//	    bindings:
//	      - column: lastname
//	        member: mLastname
//	        kind: field
//	        via: mLastname
//	        owner: example.com/app/people.Customer
//	        category: text
//	        strict: true
//	        builder: Lastname
//	        encode: mLastname
//
// Regenerate the lock with `rowmapper-generator gen --manifest <file>` after
// reviewing a change.
package mapping
