package bank

import "math/bits"

// AccountStorageOverhead is the size every account is charged for on top of
// its data.
const AccountStorageOverhead = 128

// Rent holds the parameters of the rent exempt reserve.
type Rent struct {
	LamportsPerByteYear uint64 `cbor:"1,keyasint" json:"lamports_per_byte_year"`
	ExemptionYears      uint64 `cbor:"2,keyasint" json:"exemption_years"`
}

// DefaultRent is used when no configuration was provided.
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionYears:      2,
}

// MinimumBalance returns the lamports an account holding size bytes must keep
// to be exempt from rent. It saturates on overflow.
func (r Rent) MinimumBalance(size int) uint64 {
	hi, perYear := bits.Mul64(uint64(AccountStorageOverhead+size), r.LamportsPerByteYear)
	if hi != 0 {
		return ^uint64(0)
	}
	hi, total := bits.Mul64(perYear, r.ExemptionYears)
	if hi != 0 {
		return ^uint64(0)
	}
	return total
}

// IsExempt returns true if lamports cover the reserve of size bytes.
func (r Rent) IsExempt(lamports uint64, size int) bool {
	return lamports >= r.MinimumBalance(size)
}
