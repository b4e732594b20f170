/*
Package bank implements the native currency and the system program.

Every piece of state on a synto chain lives in an Account: a lamport
balance, the id of the program that owns it and an opaque data blob. Only
the owner program may rewrite the data or debit the balance; plain wallets
are owned by the system program, which moves lamports on behalf of the
signing wallet.

An account holding data must keep a rent exempt reserve. A transfer that
would leave it below the reserve is refused, unless it empties the account,
in which case the account is purged.

The fee decorator charges a fixed price per signature from the main signer.
The price, the collector and the rent parameters are configured via gconf.
*/
package bank
