package evm

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
)

// fakeCaller answers contract calls with canned outputs keyed by method name.
type fakeCaller struct {
	abi     abi.ABI
	results map[string][]any
	errs    map[string]error
	calls   []string
}

func newFakeCaller(abiJSON string) *fakeCaller {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}

	return &fakeCaller{
		abi:     parsed,
		results: make(map[string][]any),
		errs:    make(map[string]error),
	}
}

func (f *fakeCaller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	method, err := f.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, method.Name)

	if err := f.errs[method.Name]; err != nil {
		return nil, err
	}

	values, ok := f.results[method.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}

	return method.Outputs.Pack(values...)
}

// unconfirmedBackend accepts every transaction and never has a receipt for it, like a node that
// dropped the connection right after the broadcast.
type unconfirmedBackend struct {
	sent []*gethTypes.Transaction
}

func (b *unconfirmedBackend) SendTransaction(_ context.Context, tx *gethTypes.Transaction) error {
	b.sent = append(b.sent, tx)
	return nil
}

func (b *unconfirmedBackend) TransactionReceipt(context.Context, common.Hash) (*gethTypes.Receipt, error) {
	return nil, ethereum.NotFound
}

func (b *unconfirmedBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *unconfirmedBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x01}, nil
}

func (b *unconfirmedBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return uint64(len(b.sent)), nil
}

func (b *unconfirmedBackend) HeaderByNumber(context.Context, *big.Int) (*gethTypes.Header, error) {
	return &gethTypes.Header{}, nil
}

func (b *unconfirmedBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (b *unconfirmedBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *unconfirmedBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

// testAuth returns transact options with a fixed legacy gas price and a pass-through signer.
func testAuth() *bind.TransactOpts {
	return &bind.TransactOpts{
		From:     common.HexToAddress("0x000000000000000000000000000000000000a11c"),
		Nonce:    big.NewInt(0),
		GasPrice: big.NewInt(1),
		GasLimit: 100_000,
		Signer: func(_ common.Address, tx *gethTypes.Transaction) (*gethTypes.Transaction, error) {
			return tx, nil
		},
	}
}
