package keychain

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/trilitech/tzgo/tezos"
	"golang.org/x/crypto/blake2b"
)

// operationWatermark prefixes manager operations (transactions, reveals, ...) before hashing.
const operationWatermark = 0x03

// Key is a named Tezos secret key.
type Key struct {
	name   string
	secret tezos.PrivateKey
}

// ParseKey parses an encoded secret key such as "edsk...".
func ParseKey(name, secretKey string) (*Key, error) {
	secret, err := tezos.ParsePrivateKey(secretKey)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid secret key for %q: %v", name, err)
	}
	return &Key{name: name, secret: secret}, nil
}

func (k *Key) Name() string {
	return k.name
}

// Address returns the public key hash (tz1/tz2/tz3) of the key.
func (k *Key) Address() string {
	return k.secret.Address().String()
}

// PublicKey returns the encoded public key (edpk/sppk/p2pk).
func (k *Key) PublicKey() string {
	return k.secret.Public().String()
}

// SignOperation signs the forged bytes of a manager operation and returns the encoded signature.
func (k *Key) SignOperation(forgedHex string) (string, error) {
	digest, err := operationDigest(forgedHex)
	if err != nil {
		return "", errors.WithStack(err)
	}
	sig, err := k.secret.Sign(digest)
	if err != nil {
		return "", errors.Wrap(err, "can't sign operation")
	}
	return sig.String(), nil
}

// VerifyOperation checks signature against the forged bytes with the key's public part.
func (k *Key) VerifyOperation(forgedHex, signature string) error {
	digest, err := operationDigest(forgedHex)
	if err != nil {
		return errors.WithStack(err)
	}
	sig, err := tezos.ParseSignature(signature)
	if err != nil {
		return errors.Wrapf(errs.InvalidArgument, "invalid signature: %v", err)
	}
	if err := k.secret.Public().Verify(digest, sig); err != nil {
		return errors.Wrap(errs.InvalidArgument, "signature does not match")
	}
	return nil
}

// SignatureHex decodes an encoded signature into the hex of its raw bytes,
// the form appended to forged bytes for injection.
func SignatureHex(signature string) (string, error) {
	sig, err := tezos.ParseSignature(signature)
	if err != nil {
		return "", errors.Wrapf(errs.InvalidArgument, "invalid signature: %v", err)
	}
	return hex.EncodeToString(sig.Data), nil
}

func operationDigest(forgedHex string) ([]byte, error) {
	forged, err := hex.DecodeString(forgedHex)
	if err != nil || len(forged) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "forged operation must be non-empty hex")
	}
	digest := blake2b.Sum256(append([]byte{operationWatermark}, forged...))
	return digest[:], nil
}
