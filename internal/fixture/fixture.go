// Package fixture converts fixture labels into the bytes they name.
//
// A label is read left to right: an uppercase letter stands for its own
// ASCII byte, and a pair of decimal digits stands for the byte with that
// value. "A1310" is therefore 0x41 0x0D 0x0A.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidLabel is returned for labels that do not follow the naming scheme.
var ErrInvalidLabel = errors.New("invalid fixture label")

// Defaults is the fixture set probed when nothing else is configured, in
// report order.
var Defaults = []string{
	"A1310B1310C1310",
	"A1310B1310C13",
	"A1310B1310C10",
	"A13B13C13",
	"A10B10C10",
	"A1310B1310C",
	"ABC",
}

func Decode(label string) ([]byte, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidLabel)
	}

	out := make([]byte, 0, len(label))

	for i := 0; i < len(label); {
		c := label[i]

		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
			i++
		case isDigit(c):
			if i+1 >= len(label) || !isDigit(label[i+1]) {
				return nil, fmt.Errorf("%w: %q: lone digit at offset %d", ErrInvalidLabel, label, i)
			}

			out = append(out, (c-'0')*10+(label[i+1]-'0'))
			i += 2
		default:
			return nil, fmt.Errorf("%w: %q: unexpected %q at offset %d", ErrInvalidLabel, label, c, i)
		}
	}

	return out, nil
}

// Write creates one file per label under dir, named by the label and holding
// its decoded bytes. dir is created if missing.
func Write(dir string, labels []string) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}

	for _, label := range labels {
		data, err := Decode(label)
		if err != nil {
			return err
		}

		err = os.WriteFile(filepath.Join(dir, label), data, 0o644)
		if err != nil {
			return fmt.Errorf("failed to write fixture %s: %w", label, err)
		}
	}

	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
