/*
Package synto is a small framework for running account based programs
on top of a tendermint ABCI application.

State is a set of accounts keyed by 32 byte addresses. Each account
holds native currency (lamports), an owner program and opaque data
that only the owner program may rewrite. Programs are handlers routed
by their program id; an instruction names the accounts it touches and
carries little-endian packed arguments.

Accounts that belong to a program but must be controlled without a
private key live at program derived addresses (see
FindProgramAddress). The program signs for them by presenting the
seeds, see x/invoke.

The root package only holds the interfaces and a few primitive types.
Concrete storage lives in store, the ABCI plumbing in app and the
programs under x.

We pass context through context.Context between app, middleware, and
handlers. There should exist two functions for every XYZ of type T that
we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package synto
