package host

import (
	"errors"
	"net/url"
)

type noopOpener struct{}

func (noopOpener) OpenURL(*url.URL) error {
	return errors.New("no desktop opener available")
}
