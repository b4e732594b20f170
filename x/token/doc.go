/*
Package token implements the fungible token program and the associated token
account program.

A mint and every token account is a regular account owned by ProgramID,
holding the packed Mint or TokenAccount layout as data. The associated token
account of a wallet for a mint is derived from both addresses, so clients can
find it without an index.

Authorization is checked against the configured Authenticator. A program
derived address can act as an authority when the calling program signed for
it with x/invoke.
*/
package token
