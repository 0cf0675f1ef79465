package piggybank

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/piggybank/crypto/bech32"
	"github.com/iov-one/piggybank/errors"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressHRP is the human readable part of bech32 encoded addresses.
	AddressHRP = "pig"
)

// must have the (?s) flag, otherwise it fails when the data contains a newline
var conditionRe = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition is a specially formatted array, containing information on who
// can authorize an action. It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
//
// For example a valid ed25519 signature grants sigs/ed25519/<public key>.
type Condition []byte

// NewCondition returns a condition built from given parts.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes and verify it is
// properly formatted.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := conditionRe.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address will convert a Condition into an Address.
func (c Condition) Address() Address {
	return NewAddress(c)
}

// Equals checks if two conditions are the same.
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String returns a human readable string. The extension and type are kept in
// ascii and the binary data is hex encoded.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format.
func (c Condition) Validate() error {
	if !conditionRe.Match(c) {
		return errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	return nil
}

// Address is the identity of an account. It is a collision-free, one-way
// digest of a Condition. Handlers only ever compare addresses for equality.
type Address []byte

// NewAddress hashes and truncates into the proper size.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// Validate returns an error if the address is not the valid size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address length %d", len(a))
	}
	return nil
}

// String returns the upper case hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the bech32 representation using AddressHRP.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(AddressHRP, a)
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts any format supported by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from its text representation. Supported
// formats are
//
//	hex:<hex>        (the prefix is optional)
//	bech32:<bech32>
//	cond:<ext>/<type>/<hex data>
func ParseAddress(enc string) (Address, error) {
	format := "hex"
	if chunks := strings.SplitN(enc, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = raw
	case "bech32":
		raw, err := bech32.DecodeWithPrefix(enc, AddressHRP)
		if err != nil {
			return nil, err
		}
		addr = raw
	case "cond":
		args := strings.Split(enc, "/")
		if len(args) != 3 {
			return nil, errors.ErrInput.New("invalid condition format")
		}
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return nil, errors.ErrInput.Newf("malformed condition data: %s", err)
		}
		c := NewCondition(args[0], args[1], data)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", format)
	}

	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
