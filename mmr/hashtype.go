package mmr

import (
	"fmt"
	"hash"

	"github.com/dchest/blake2b"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// HashType selects the hash function of a range, and of the objects it
// commits to.
type HashType uint8

const (
	HashTypeBlake2bMMR  HashType = 1
	HashTypeBlake2bMMR2 HashType = 2
	HashTypeKeccak      HashType = 3
	HashTypeSHA256D     HashType = 4
	HashTypeSHA256      HashType = 5

	HashTypeFirst = HashTypeBlake2bMMR
	HashTypeLast  = HashTypeSHA256
)

var hashTypeNames = map[HashType]string{
	HashTypeBlake2bMMR:  "blake2bmmr",
	HashTypeBlake2bMMR2: "blake2bmmr2",
	HashTypeKeccak:      "keccak256",
	HashTypeSHA256D:     "sha256D",
	HashTypeSHA256:      "sha256",
}

func (t HashType) IsValid() bool { return t >= HashTypeFirst && t <= HashTypeLast }

func (t HashType) String() string {
	if s, ok := hashTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("hashtype(%d)", uint8(t))
}

// Hasher returns the constructor for the hash. It panics for an invalid type,
// use IsValid or CheckHashType on untrusted values first.
func (t HashType) Hasher() Hasher {
	switch t {
	case HashTypeBlake2bMMR, HashTypeBlake2bMMR2:
		return newBlake2b256
	case HashTypeKeccak:
		return sha3.NewLegacyKeccak256
	case HashTypeSHA256D:
		return newSHA256D
	case HashTypeSHA256:
		return sha256.New
	}
	panic(ierrors.Wrapf(ErrUnknownHashType, "%d", uint8(t)))
}

func (t HashType) New() hash.Hash { return t.Hasher()() }

// Sum hashes the concatenation of data.
func (t HashType) Sum(data ...[]byte) Hash {
	h := t.New()
	for _, d := range data {
		h.Write(d)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// CheckHashType returns an error for values outside the catalogue.
func CheckHashType(t HashType) error {
	if !t.IsValid() {
		return ierrors.Wrapf(ErrUnknownHashType, "%d", uint8(t))
	}
	return nil
}

// blake2bPersonal personalizes the blake2b hash of both blake2b MMR types.
var blake2bPersonal = []byte("VerusDefaultHash")

func newBlake2b256() hash.Hash {
	// only fails for out of range config values
	h, _ := blake2b.New(&blake2b.Config{Size: HashLen, Person: blake2bPersonal})
	return h
}

// sha256d is SHA256(SHA256(x)).
type sha256d struct {
	hash.Hash
}

func newSHA256D() hash.Hash { return sha256d{sha256.New()} }

func (d sha256d) Sum(b []byte) []byte {
	first := d.Hash.Sum(nil)
	second := sha256.Sum256(first)
	return append(b, second[:]...)
}
