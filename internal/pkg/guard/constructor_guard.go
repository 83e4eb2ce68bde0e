// Package guard provides a marker that lets value objects and aggregates tell
// a constructor-built instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through their
// constructor. The zero value reports the object as not constructed.
//
// Example:
//
//	type Offer struct {
//	    guard guard.ConstructorGuard
//	}
//
//	func NewOffer() Offer {
//	    return Offer{guard: guard.NewConstructorGuard()}
//	}
//
//	func (o Offer) Validate() error {
//	    return o.guard.Validate(ErrOfferIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
