package commands

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      synto.Marshaller
}

// TestGenCmd generates sample cbor and json encodings
// of various objects to test clients against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := os.WriteFile(jsFile, js, 0644); err != nil {
			return err
		}

		bin, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrapf(err, "binary %s", ex.Filename)
		}
		binFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := os.WriteFile(binFile, bin, 0644); err != nil {
			return err
		}
	}
	return nil
}
