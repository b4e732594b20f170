/*
Package errors implements registered error codes for synto.

Reuse the root errors of this package wherever possible and register a
custom code only when a program needs a distinguished failure, such as
x/swap's NotTheOwner. Codes are ABCI codes and let the client tell errors
apart.

	var ErrThing = errors.Register(1200, "thing went wrong")

	return ErrThing.Newf("account %s", addr)
	return errors.Wrap(err, "load escrow")

A stacktrace is attached at the most inner Wrap. Format with %+v to print it,
%s and %v print the error message only.
*/
package errors
