package errcode

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":              OK,
		"invalid_params":  InvalidParams,
		"invalid_address": InvalidAddress,
		"address_in_use":  AddressInUse,
		"nack":            Nack,
		"unknown_type":    UnknownType,
		"unknown_device":  UnknownDevice,
		"duplicate_id":    DuplicateID,
		"pin_in_use":      PinInUse,
		"error":           Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"bare", Nack, Nack},
		{"wrapper", &E{C: AddressInUse, Op: "register", Msg: "0x68"}, AddressInUse},
		{"pkg/errors", errors.Wrapf(InvalidAddress, "address %d", 200), InvalidAddress},
		{"fmt %w", fmt.Errorf("tx: %w", Nack), Nack},
		{"foreign", errors.New("boom"), Error},
	}
	for _, tc := range cases {
		if got := Of(tc.err); got != tc.want {
			t.Errorf("%s: Of() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEError(t *testing.T) {
	e := &E{C: Nack, Op: "tx", Msg: "address 0x50"}
	if got, want := e.Error(), "tx: nack: address 0x50"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if (&E{C: Nack}).Error() != "nack" {
		t.Fatal("bare E should render its code")
	}
}
