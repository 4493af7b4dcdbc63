package localstate

import (
	"context"
	"errors"
	"strconv"
)

// Consent is a device's cookie decision. Decided is false until the user
// accepts or declines.
type Consent struct {
	Decided  bool `json:"decided"`
	Accepted bool `json:"accepted"`
}

func GetConsent(ctx context.Context, store Store, deviceID string) (Consent, error) {
	value, err := store.Get(ctx, ConsentKey(deviceID))
	if errors.Is(err, ErrNotFound) {
		return Consent{}, nil
	}
	if err != nil {
		return Consent{}, err
	}
	accepted, err := strconv.ParseBool(value)
	if err != nil {
		// unreadable values count as undecided so the banner shows again
		return Consent{}, nil
	}
	return Consent{Decided: true, Accepted: accepted}, nil
}

func SetConsent(ctx context.Context, store Store, deviceID string, accepted bool) error {
	return store.Set(ctx, ConsentKey(deviceID), strconv.FormatBool(accepted))
}
