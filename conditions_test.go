package piggybank_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/crypto/bech32"
	"github.com/iov-one/piggybank/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		addr := piggybank.NewAddress([]byte("ABCD123456LHB"))

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(piggybank.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test condition printing", t, func() {
		cond := piggybank.NewCondition("sigs", "ed25519", []byte{0xAB, 0xCD})

		So(cond.String(), ShouldEqual, "sigs/ed25519/ABCD")
		So(cond.Validate(), ShouldBeNil)
		So(piggybank.Condition("nope").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	valid := piggybank.NewAddress([]byte("some data"))
	cond := piggybank.NewCondition("foo", "bar", []byte("conditiondata"))
	pig, err := valid.Bech32()
	require.NoError(t, err)
	foreign, err := bech32.Encode("tiov", valid)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr piggybank.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, hex.EncodeToString(valid)),
			wantAddr: valid,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, hex.EncodeToString(valid)),
			wantAddr: valid,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, pig),
			wantAddr: valid,
		},
		"bech32 of another network": {
			json:    fmt.Sprintf(`"bech32:%s"`, foreign),
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: cond.Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"too short": {
			json:    `"hex:0102"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"not a string": {
			json:    `12`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a piggybank.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := piggybank.NewAddress([]byte("piggy"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got piggybank.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestAddressClone(t *testing.T) {
	addr := piggybank.NewAddress([]byte("piggy"))
	cpy := addr.Clone()
	assert.True(t, addr.Equals(cpy))

	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, piggybank.Address(nil).Clone())
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, piggybank.NewAddress([]byte("x")).Validate())
	assert.True(t, errors.ErrEmpty.Is(piggybank.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(piggybank.Address{1, 2, 3}.Validate()))
}
