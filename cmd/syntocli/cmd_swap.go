package main

import (
	"io"

	syntod "github.com/iov-one/synto/cmd/syntod/app"
	"github.com/iov-one/synto/x/swap"
	"github.com/iov-one/synto/x/token"
)

func cmdInitialize(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction that initializes the escrow of the owner. The owner
must sign it and pays for the escrow record.
`)
	var (
		ownerFl = flAddress(fl, "owner", "Address of the escrow owner.")
	)
	fl.Parse(args)
	if err := required(fl, "owner"); err != nil {
		return err
	}

	ins, err := swap.NewInitializeInstruction(*ownerFl)
	if err != nil {
		return err
	}
	return writeTx(output, &syntod.Tx{Instruction: ins})
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction that deposits tokens into the vault of an escrow. The
signer must own the escrow.
`)
	var (
		escrowFl = flAddress(fl, "escrow", "Address of the escrow.")
		signerFl = flAddress(fl, "signer", "Address of the escrow owner, holding the tokens.")
		mintFl   = flAddress(fl, "mint", "Address of the token mint.")
		amountFl = fl.Uint64("amount", 0, "Number of tokens to deposit.")
	)
	fl.Parse(args)
	if err := required(fl, "escrow", "signer", "mint"); err != nil {
		return err
	}

	ins, err := swap.NewDepositInstruction(*escrowFl, *signerFl, *mintFl, *amountFl)
	if err != nil {
		return err
	}
	return writeTx(output, &syntod.Tx{Instruction: ins})
}

func cmdSwap(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction that pays lamports to an escrow and receives tokens at
the fixed rate.
`)
	var (
		escrowFl   = flAddress(fl, "escrow", "Address of the escrow.")
		signerFl   = flAddress(fl, "signer", "Address paying the lamports and receiving the tokens.")
		mintFl     = flAddress(fl, "mint", "Address of the token mint.")
		lamportsFl = fl.Uint64("lamports", 0, "Number of lamports to pay.")
	)
	fl.Parse(args)
	if err := required(fl, "escrow", "signer", "mint"); err != nil {
		return err
	}

	ins, err := swap.NewSwapInstruction(*escrowFl, *signerFl, *mintFl, *lamportsFl)
	if err != nil {
		return err
	}
	return writeTx(output, &syntod.Tx{Instruction: ins})
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction that withdraws the collected lamports of an escrow to
its owner.
`)
	var (
		escrowFl = flAddress(fl, "escrow", "Address of the escrow.")
		signerFl = flAddress(fl, "signer", "Address of the escrow owner.")
	)
	fl.Parse(args)
	if err := required(fl, "escrow", "signer"); err != nil {
		return err
	}
	return writeTx(output, &syntod.Tx{Instruction: swap.NewWithdrawInstruction(*escrowFl, *signerFl)})
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction that sends tokens between the associated token accounts
of two wallets.
`)
	var (
		signerFl = flAddress(fl, "signer", "Wallet sending the tokens.")
		destFl   = flAddress(fl, "dest", "Wallet receiving the tokens.")
		mintFl   = flAddress(fl, "mint", "Address of the token mint.")
		amountFl = fl.Uint64("amount", 0, "Number of tokens to send.")
	)
	fl.Parse(args)
	if err := required(fl, "signer", "dest", "mint"); err != nil {
		return err
	}

	source, _, err := token.AssociatedAddress(*signerFl, *mintFl)
	if err != nil {
		return err
	}
	dest, _, err := token.AssociatedAddress(*destFl, *mintFl)
	if err != nil {
		return err
	}
	ins := token.NewTransferInstruction(source, dest, *signerFl, *amountFl)
	return writeTx(output, &syntod.Tx{Instruction: ins})
}
