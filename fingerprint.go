package governance

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Azulo-app/platform-dao-governance/sdk/evm"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// QuestionSeparator separates the proposal id from the transaction hashes digest in a question.
const QuestionSeparator = "␟"

// TransactionHash returns the EIP-712 hash of tx under the domain of the deployment.
func TransactionHash(deployment types.Deployment, tx types.Transaction) (common.Hash, error) {
	return evm.NewEncoder(deployment.ChainID, deployment.Module).HashTransaction(tx)
}

// TransactionHashesDigest returns keccak256(abi.encodePacked(bytes32[] txHashes)).
func TransactionHashesDigest(txHashes []common.Hash) common.Hash {
	packed := make([]byte, 0, len(txHashes)*common.HashLength)
	for _, h := range txHashes {
		packed = append(packed, h.Bytes()...)
	}

	return crypto.Keccak256Hash(packed)
}

// BuildQuestion returns the oracle question text of a proposal: the proposal id, the separator and
// the lowercase hex digest of its transaction hashes.
func BuildQuestion(proposalID string, txHashes []common.Hash) string {
	digest := TransactionHashesDigest(txHashes)

	return proposalID + QuestionSeparator + hex.EncodeToString(digest.Bytes())
}

// QuestionHash returns the key of a question in the binding store.
func QuestionHash(question string) common.Hash {
	return crypto.Keccak256Hash([]byte(question))
}
