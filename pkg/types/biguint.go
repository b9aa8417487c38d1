package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// BigUInt is an unsigned 256-bit integer as the platform accepts it: a JSON number,
// a decimal string or a 0x-prefixed hex string. It is always marshalled as a decimal string.
type BigUInt struct {
	v *big.Int
}

func NewBigUInt(x *big.Int) *BigUInt {
	if x == nil {
		return nil
	}
	return &BigUInt{v: new(big.Int).Set(x)}
}

func NewBigUIntFromUint64(x uint64) *BigUInt {
	return &BigUInt{v: new(big.Int).SetUint64(x)}
}

// ParseBigUInt parses a decimal or 0x-hex string.
func ParseBigUInt(s string) (*BigUInt, error) {
	if s == "" {
		return nil, fmt.Errorf("empty numeric value")
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative numeric value %q", s)
	}
	return &BigUInt{v: v}, nil
}

// MustParseBigUInt is ParseBigUInt for constants; it panics on malformed input.
func MustParseBigUInt(s string) *BigUInt {
	b, err := ParseBigUInt(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Big returns a copy of the underlying integer.
func (b *BigUInt) Big() *big.Int {
	if b == nil || b.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.v)
}

func (b *BigUInt) Uint64() uint64 {
	return b.Big().Uint64()
}

func (b *BigUInt) String() string {
	return b.Big().String()
}

func (b *BigUInt) Cmp(other *BigUInt) int {
	return b.Big().Cmp(other.Big())
}

func (b *BigUInt) IsZero() bool {
	return b.Big().Sign() == 0
}

func (b BigUInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Big().String())
}

func (b *BigUInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseBigUInt(s)
		if err != nil {
			return err
		}
		b.v = parsed.v
		return nil
	}

	if parsed, err := ParseBigUInt(string(data)); err == nil {
		b.v = parsed.v
		return nil
	}

	// numbers such as 1e6 arrive in exponent form
	f, _, err := big.ParseFloat(string(data), 10, 256, big.ToNearestEven)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s", string(data))
	}
	if !f.IsInt() || f.Sign() < 0 {
		return fmt.Errorf("numeric value %s is not an unsigned integer", string(data))
	}
	v, _ := f.Int(nil)
	b.v = v
	return nil
}
