package purchase

import (
	"errors"
	"strings"
)

var ErrInvalidPlatform = errors.New("invalid platform")

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

func NewPlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformAndroid, PlatformIOS:
		return p, nil
	}
	return "", ErrInvalidPlatform
}

// RequiresAcknowledgement reports whether unacknowledged purchases are refunded by the store.
func (p Platform) RequiresAcknowledgement() bool {
	return p == PlatformAndroid
}

// RequiresOfferToken reports whether subscription purchases must carry an offer token.
func (p Platform) RequiresOfferToken() bool {
	return p == PlatformAndroid
}

func (p Platform) String() string {
	return string(p)
}
