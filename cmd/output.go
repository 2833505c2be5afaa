package cmd

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

func printJSON(w io.Writer, v any) (err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(v)
	if err != nil {
		err = errors.Wrap(err, "no se pudo escribir la salida")
		return err
	}
	return nil
}
