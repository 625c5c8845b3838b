package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	abiUtils "github.com/Azulo-app/platform-dao-governance/internal/utils/abi"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// ContentHash reproduces the content hash RealityETH computes for a question:
// keccak256(abi.encodePacked(uint256 templateId, uint32 openingTs, string question)).
func ContentHash(templateID *big.Int, openingTS uint32, question string) (common.Hash, error) {
	packed, err := abiUtils.EncodePacked(orZero(templateID), openingTS, question)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(packed), nil
}

// QuestionID reproduces the question id RealityETH v3 assigns in askQuestionWithMinBond:
//
//	keccak256(abi.encodePacked(contentHash, arbitrator, uint32 timeout, uint256 minBond,
//	    address realitio, address asker, uint256 nonce))
//
// https://github.com/RealityETH/reality-eth-monorepo/blob/main/packages/contracts/flat/RealityETH-3.0.sol
func QuestionID(req types.QuestionRequest, oracle, asker common.Address) (common.Hash, error) {
	contentHash, err := ContentHash(req.TemplateID, req.OpeningTS, req.Question)
	if err != nil {
		return common.Hash{}, err
	}

	packed, err := abiUtils.EncodePacked(
		contentHash,
		req.Arbitrator,
		req.Timeout,
		orZero(req.MinimumBond),
		oracle,
		asker,
		orZero(req.Nonce),
	)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(packed), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
