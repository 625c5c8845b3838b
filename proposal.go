package governance

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/Azulo-app/platform-dao-governance/internal/utils/safecast"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// Proposal is the off-chain proposal file: a proposal id and the ordered transactions it stages.
// Only the hashes of the transactions are ever submitted to the oracle.
type Proposal struct {
	ID           string              `json:"id" validate:"required"`
	Transactions []types.Transaction `json:"txs" validate:"required,min=1"`
}

// NewProposal reads a proposal file from reader and validates it.
func NewProposal(reader io.Reader) (*Proposal, error) {
	var out Proposal
	if err := json.NewDecoder(reader).Decode(&out); err != nil {
		return nil, err
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// LoadProposal reads a proposal file from disk.
func LoadProposal(path string) (*Proposal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open proposal file: %w", err)
	}
	defer f.Close()

	return NewProposal(f)
}

// WriteProposal writes the proposal as indented JSON.
func WriteProposal(w io.Writer, p *Proposal) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}

func (p *Proposal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}

	for i, tx := range p.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid transaction at index %d: %w", i, err)
		}
	}

	return nil
}

// Transaction returns the transaction at index as it is hashed and executed. Its nonce is the
// index, so identical transactions in one proposal still get distinct hashes. The nonce in the
// file is ignored.
func (p *Proposal) Transaction(index int) (types.Transaction, error) {
	if index < 0 || index >= len(p.Transactions) {
		return types.Transaction{}, fmt.Errorf("index out of range: %d >= %d", index, len(p.Transactions))
	}

	nonce, err := safecast.IntToUint64(index)
	if err != nil {
		return types.Transaction{}, err
	}

	tx := p.Transactions[index]
	tx.Nonce = new(big.Int).SetUint64(nonce)

	return tx, nil
}

// TransactionHashes returns the hashes of the transactions under the domain of the deployment,
// in proposal order.
func (p *Proposal) TransactionHashes(deployment types.Deployment) ([]common.Hash, error) {
	hashes := make([]common.Hash, 0, len(p.Transactions))
	for i := range p.Transactions {
		tx, err := p.Transaction(i)
		if err != nil {
			return nil, err
		}

		h, err := TransactionHash(deployment, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to hash transaction %d: %w", i, err)
		}
		hashes = append(hashes, h)
	}

	return hashes, nil
}

// Question returns the question text and the question hash of the proposal.
func (p *Proposal) Question(deployment types.Deployment) (string, common.Hash, error) {
	hashes, err := p.TransactionHashes(deployment)
	if err != nil {
		return "", common.Hash{}, err
	}

	question := BuildQuestion(p.ID, hashes)

	return question, QuestionHash(question), nil
}
