package app

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// ResultSet is the encoding of the keys or the values returned by a query.
type ResultSet struct {
	Results [][]byte `cbor:"1,keyasint"`
}

// Marshal encodes the set.
func (r *ResultSet) Marshal() ([]byte, error) {
	return cbor.Marshal(r)
}

// Unmarshal decodes the set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	if err := cbor.Unmarshal(raw, r); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []synto.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []synto.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]synto.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatch result set size")
	}
	mods := make([]synto.Model, len(kref))
	for i := range mods {
		mods[i] = synto.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o synto.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
