package bank

import (
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/gconf"
)

const configPkg = "bank"

// Configuration of the native currency.
type Configuration struct {
	// Owner may update the configuration.
	Owner synto.Address `cbor:"1,keyasint,omitempty" json:"owner,omitempty"`
	// LamportsPerSignature is the transaction fee, charged per signature.
	LamportsPerSignature uint64 `cbor:"2,keyasint" json:"lamports_per_signature"`
	// CollectorAddress receives all fees.
	CollectorAddress synto.Address `cbor:"3,keyasint,omitempty" json:"collector_address,omitempty"`
	// LamportsPerByteYear and ExemptionYears define the rent exempt
	// reserve.
	LamportsPerByteYear uint64 `cbor:"4,keyasint" json:"lamports_per_byte_year"`
	ExemptionYears      uint64 `cbor:"5,keyasint" json:"exemption_years"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cbor.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, c)
}

func (c *Configuration) GetOwner() synto.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	// owner field is optional
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if c.LamportsPerSignature > math.MaxInt64 {
		return errors.Wrapf(errors.ErrInput, "lamports per signature above %d", int64(math.MaxInt64))
	}
	if c.LamportsPerSignature != 0 {
		if len(c.CollectorAddress) == 0 {
			return errors.Wrap(errors.ErrState, "collector address missing")
		}
		if err := c.CollectorAddress.Validate(); err != nil {
			return errors.Wrap(err, "collector address")
		}
	}
	if c.ExemptionYears == 0 || c.LamportsPerByteYear == 0 {
		return errors.Wrap(errors.ErrState, "rent parameters must be positive")
	}
	return nil
}

// Rent returns the rent parameters of this configuration.
func (c *Configuration) Rent() Rent {
	return Rent{
		LamportsPerByteYear: c.LamportsPerByteYear,
		ExemptionYears:      c.ExemptionYears,
	}
}

// DefaultConfiguration charges 5000 lamports per signature to collector.
func DefaultConfiguration(collector synto.Address) Configuration {
	return Configuration{
		LamportsPerSignature: 5000,
		CollectorAddress:     collector,
		LamportsPerByteYear:  DefaultRent.LamportsPerByteYear,
		ExemptionYears:       DefaultRent.ExemptionYears,
	}
}

// loadConf returns the stored configuration, or nil if there is none.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// LoadRent returns the configured rent, falling back to DefaultRent.
func LoadRent(db gconf.ReadStore) (Rent, error) {
	conf, err := loadConf(db)
	if err != nil {
		return Rent{}, err
	}
	if conf == nil {
		return DefaultRent, nil
	}
	return conf.Rent(), nil
}
