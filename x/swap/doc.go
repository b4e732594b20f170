/*
Package swap implements a custodial fixed-rate swap program.

An owner creates an escrow record at an address derived from their wallet,
deposits tokens of one mint into a vault, which is the associated token
account of the escrow, and lets anyone buy those tokens with lamports at a
fixed rate. The owner can withdraw the collected lamports at any time. The
escrow keeps its rent exempt reserve so the record survives a withdrawal.

The escrow has no private key. When tokens leave the vault the program
signs for the escrow address by presenting its seeds, see x/invoke.
*/
package swap
