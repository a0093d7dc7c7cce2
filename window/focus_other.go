//go:build !windows

package window

import "github.com/cockroachdb/errors"

func Focus(title string) error {
	return errors.Wrapf(ErrUnsupported, "title %q", title)
}
