/*
Package x contains the programs and decorators of a synto chain

Programs implement Handler for the instructions addressed to their
program id, decorators implement the shared pre and post processing
(signatures, fees, savepoints).

A program never reads the signatures itself. It receives an
Authenticator and asks whether a given address signed, which lets
x/invoke add program derived signers when one program calls
another.
*/
package x
