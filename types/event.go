package types

import "github.com/ethereum/go-ethereum/common"

// ProposalQuestionCreated is emitted whenever a proposal is bound to a new oracle question.
type ProposalQuestionCreated struct {
	QuestionID common.Hash `json:"questionId"`
	ProposalID string      `json:"proposalId"`
}
