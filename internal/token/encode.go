package token

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

const wordSize = 32

// ID is a 256-bit token identifier.
type ID [32]byte

// Encode returns the canonical encoding of a mint request: the Solidity ABI
// encoding of the tuple (uint64[], int64[], int64[], int64[], int64[],
// uint32). The tuple is dynamic, so the encoding opens with the offset of
// its body.
func Encode(mass []uint64, x, y, velX, velY []int64, ticks uint32) []byte {
	signed := [][]int64{x, y, velX, velY}

	size := 7 * wordSize
	size += wordSize * (1 + len(mass))
	for _, arr := range signed {
		size += wordSize * (1 + len(arr))
	}
	buf := make([]byte, 7*wordSize, size)
	putUint(buf[0:], wordSize)
	head := buf[wordSize:]

	// Offsets are relative to the start of the tuple body.
	offset := uint64(6 * wordSize)
	putUint(head[0:], offset)
	offset += uint64(wordSize * (1 + len(mass)))
	for i, arr := range signed {
		putUint(head[(i+1)*wordSize:], offset)
		offset += uint64(wordSize * (1 + len(arr)))
	}
	putUint(head[5*wordSize:], uint64(ticks))

	buf = appendUint(buf, uint64(len(mass)))
	for _, m := range mass {
		buf = appendUint(buf, m)
	}
	for _, arr := range signed {
		buf = appendUint(buf, uint64(len(arr)))
		for _, v := range arr {
			buf = appendInt(buf, v)
		}
	}

	return buf
}

func putUint(word []byte, v uint64) {
	clear(word[:wordSize-8])
	binary.BigEndian.PutUint64(word[wordSize-8:wordSize], v)
}

func appendUint(buf []byte, v uint64) []byte {
	var w [wordSize]byte
	binary.BigEndian.PutUint64(w[wordSize-8:], v)
	return append(buf, w[:]...)
}

func appendInt(buf []byte, v int64) []byte {
	var w [wordSize]byte
	if v < 0 {
		for i := 0; i < wordSize-8; i++ {
			w[i] = 0xff
		}
	}
	binary.BigEndian.PutUint64(w[wordSize-8:], uint64(v))
	return append(buf, w[:]...)
}

// TokenID returns the Keccak-256 hash of data.
func TokenID(data []byte) ID {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)

	var id ID
	h.Sum(id[:0])
	return id
}

// Int returns the identifier as an unsigned 256-bit integer.
func (id ID) Int() *uint256.Int {
	return new(uint256.Int).SetBytes32(id[:])
}

func (id ID) IsZero() bool {
	return id == ID{}
}

// String returns the 0x-prefixed, zero-padded hex form.
func (id ID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Decimal returns the base-10 form.
func (id ID) Decimal() string {
	return id.Int().Dec()
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID accepts 0x-prefixed hex (any number of digits up to 64) or a
// base-10 integer.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if len(digits) == 0 || len(digits) > 2*len(ID{}) {
			return ID{}, fmt.Errorf("invalid token id: %q", s)
		}
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		b, err := hex.DecodeString(digits)
		if err != nil {
			return ID{}, fmt.Errorf("invalid token id %q: %w", s, err)
		}
		var id ID
		copy(id[len(id)-len(b):], b)
		return id, nil
	}

	n, err := uint256.FromDecimal(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	return ID(n.Bytes32()), nil
}
