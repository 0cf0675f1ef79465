package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/crypto"
	"github.com/iov-one/piggybank/errors"
)

// signPrefix versions the layout of the signed bytes.
var signPrefix = []byte{0, 0xCA, 0xFE, 0}

// Signer is implemented by private keys that can sign transactions.
type Signer interface {
	Sign(message []byte) (*crypto.Signature, error)
	PublicKey() *crypto.PublicKey
}

var _ Signer = (*crypto.PrivateKey)(nil)

// VerifyTxSignatures verifies every signature of tx and bumps the nonce of
// each signer. It returns the signer conditions in signature order, which
// is empty for an unsigned transaction. A key may sign a transaction only
// once.
func VerifyTxSignatures(db piggybank.KVStore, tx SignedTx, chainID string) ([]piggybank.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}

	sigs := tx.GetSignatures()
	signers := make([]piggybank.Condition, 0, len(sigs))
	for i, sig := range sigs {
		cond, err := VerifySignature(db, sig, signBytes, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		for _, prev := range signers {
			if prev.Equals(cond) {
				return nil, errors.Wrapf(errors.ErrDuplicate, "signature %d: signer %s", i, cond)
			}
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks a single signature and, when valid, stores the
// incremented nonce of its signer. The first signature of a key creates its
// account with a zero nonce.
func VerifySignature(db piggybank.KVStore, sig *StdSignature, signBytes []byte, chainID string) (piggybank.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewBucket()
	user, err := loadOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "cannot store signer")
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of
//
//	prefix (4) | len(chainID) (1) | chainID | nonce (8, big endian) | tx bytes
//
// Binding the chain id and the nonce prevents replaying a contribution or a
// withdrawal on another network or a second time.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !piggybank.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(signPrefix)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// SignTx signs tx for the given chain using nonce seq.
func SignTx(signer Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextNonce returns the nonce the owner of addr must sign the next
// transaction with. Unknown signers start at zero.
func NextNonce(db piggybank.ReadOnlyKVStore, addr piggybank.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, addr, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "signer")
	}
}
