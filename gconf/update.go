package gconf

import (
	"reflect"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
)

// OwnedConfig must have an Owner. A configuration update must be signed by
// the owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() synto.Address
}

// Update applies patch on top of the configuration stored for pkg. Every non
// zero field of the patch replaces the stored value.
//
// The current configuration is loaded into config, which must be a pointer
// to a struct of the same type as patch. The configuration owner must sign
// the transaction. A configuration that does not exist cannot be updated
// because there is nobody to authorize the change, create it via genesis.
func Update(ctx synto.Context, db Store, auth x.Authenticator, pkg string, config, patch OwnedConfig) error {
	if err := Load(db, pkg, config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := config.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}
	if err := applyPatch(config, patch); err != nil {
		return errors.Wrap(err, "cannot patch config")
	}
	if err := Save(db, pkg, config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

func applyPatch(config, patch OwnedConfig) error {
	cType := reflect.TypeOf(config)
	if reflect.TypeOf(patch) != cType || cType.Kind() != reflect.Ptr || cType.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrType, "patch %T does not match %T", patch, config)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(patch).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if got.IsZero() {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}
