package crypto

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key. Its condition identifies the signer.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

// Verify verifies the signature was created with this message and public key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a condition.
func (p *PublicKey) Condition() piggybank.Condition {
	return piggybank.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the condition of this key.
func (p *PublicKey) Address() piggybank.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key has an invalid length.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Equals returns true if both keys are the same.
func (p *PublicKey) Equals(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return bytes.Equal(p.Ed25519, other.Ed25519)
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{...}" }
func (*PrivateKey) ProtoMessage()    {}

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return &Signature{
		Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message),
	}, nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically generates a private key from a
// 32 byte seed. Use it when there is a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
