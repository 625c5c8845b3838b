package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuestionRequest holds the parameters of an oracle question.
type QuestionRequest struct {
	TemplateID  *big.Int
	Question    string
	Arbitrator  common.Address
	Timeout     uint32
	OpeningTS   uint32
	MinimumBond *big.Int
	Nonce       *big.Int
}
