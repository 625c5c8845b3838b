package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Operation is the kind of call the executor performs for a transaction.
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

var ErrInvalidOperation = errors.New("invalid operation")

// Validate checks the operation is one of the known call kinds.
func (o Operation) Validate() error {
	switch o {
	case OperationCall, OperationDelegateCall:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidOperation, uint8(o))
	}
}

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "call"
	case OperationDelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// Transaction is a single call staged in a proposal. Only its hash is ever committed; the body
// is supplied again by whoever executes it.
//
// Nonce only disambiguates otherwise identical transactions inside one proposal.
type Transaction struct {
	To        common.Address `json:"to"`
	Value     *big.Int       `json:"value"`
	Data      []byte         `json:"data"`
	Operation Operation      `json:"operation"`
	Nonce     *big.Int       `json:"nonce"`
}

// ValueOrZero returns the transaction value, treating nil as zero.
func (t Transaction) ValueOrZero() *big.Int {
	if t.Value == nil {
		return new(big.Int)
	}

	return t.Value
}

// NonceOrZero returns the transaction nonce, treating nil as zero.
func (t Transaction) NonceOrZero() *big.Int {
	if t.Nonce == nil {
		return new(big.Int)
	}

	return t.Nonce
}

// Validate checks that the numeric fields fit in a uint256 and the operation is known.
func (t Transaction) Validate() error {
	if err := t.Operation.Validate(); err != nil {
		return err
	}
	if !isUint256(t.ValueOrZero()) {
		return fmt.Errorf("value %s out of uint256 range", t.Value)
	}
	if !isUint256(t.NonceOrZero()) {
		return fmt.Errorf("nonce %s out of uint256 range", t.Nonce)
	}

	return nil
}

// Equal reports whether both transactions carry the same fields.
func (t Transaction) Equal(o Transaction) bool {
	return t.To == o.To &&
		t.ValueOrZero().Cmp(o.ValueOrZero()) == 0 &&
		bytes.Equal(t.Data, o.Data) &&
		t.Operation == o.Operation &&
		t.NonceOrZero().Cmp(o.NonceOrZero()) == 0
}

// jsonTransaction is the proposal file layout: value as a decimal string, data as 0x hex.
type jsonTransaction struct {
	To        common.Address  `json:"to"`
	Value     json.RawMessage `json:"value"`
	Data      hexutil.Bytes   `json:"data"`
	Operation Operation       `json:"operation"`
	Nonce     json.RawMessage `json:"nonce"`
}

// MarshalJSON writes the transaction in the proposal file layout.
func (t Transaction) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(t.ValueOrZero().String())
	if err != nil {
		return nil, err
	}
	nonce, err := json.Marshal(t.NonceOrZero())
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonTransaction{
		To:        t.To,
		Value:     value,
		Data:      t.Data,
		Operation: t.Operation,
		Nonce:     nonce,
	})
}

// UnmarshalJSON reads the proposal file layout. Numeric fields may be given as JSON numbers or as
// decimal / 0x-prefixed strings.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw jsonTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	value, err := parseUint256(raw.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	nonce, err := parseUint256(raw.Nonce)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}

	*t = Transaction{
		To:        raw.To,
		Value:     value,
		Data:      raw.Data,
		Operation: raw.Operation,
		Nonce:     nonce,
	}

	return t.Validate()
}

func parseUint256(raw json.RawMessage) (*big.Int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return new(big.Int), nil
	}
	s = strings.Trim(s, `"`)

	// 0x means hex, anything else must be plain decimal digits
	digits, base := s, 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		digits, base = s[2:], 16
	}
	if strings.ContainsAny(digits, "+-_") {
		return nil, fmt.Errorf("cannot parse %q as an integer", s)
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as an integer", s)
	}
	if !isUint256(v) {
		return nil, fmt.Errorf("%s out of uint256 range", v)
	}

	return v, nil
}

func isUint256(v *big.Int) bool {
	return v.Sign() >= 0 && v.BitLen() <= 256
}
