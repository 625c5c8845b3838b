package sdkerrors

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrQuestionNotFinalized is returned by oracles while a question has no final answer.
var ErrQuestionNotFinalized = errors.New("question not finalized")

// QuestionNotFinalizedError is returned when reading the result of a question that has no final
// answer yet.
type QuestionNotFinalizedError struct {
	QuestionID common.Hash
}

func (e *QuestionNotFinalizedError) Error() string {
	return fmt.Sprintf("question %s not finalized", e.QuestionID.Hex())
}

func (e *QuestionNotFinalizedError) Unwrap() error {
	return ErrQuestionNotFinalized
}

func NewQuestionNotFinalizedError(questionID common.Hash) *QuestionNotFinalizedError {
	return &QuestionNotFinalizedError{QuestionID: questionID}
}

// QuestionExistsError is returned by oracles when asked the same question twice.
type QuestionExistsError struct {
	QuestionID common.Hash
}

func (e *QuestionExistsError) Error() string {
	return fmt.Sprintf("question %s already exists", e.QuestionID.Hex())
}

func NewQuestionExistsError(questionID common.Hash) *QuestionExistsError {
	return &QuestionExistsError{QuestionID: questionID}
}

// TransactionRevertedError is returned when a submitted transaction was mined but reverted.
type TransactionRevertedError struct {
	TxHash common.Hash
}

func (e *TransactionRevertedError) Error() string {
	return fmt.Sprintf("transaction %s reverted", e.TxHash.Hex())
}

func NewTransactionRevertedError(txHash common.Hash) *TransactionRevertedError {
	return &TransactionRevertedError{TxHash: txHash}
}

// ErrTransactionPending is returned when a transaction was broadcast but its receipt could not be
// obtained. The transaction may still be mined.
var ErrTransactionPending = errors.New("transaction pending")

// TransactionPendingError is returned when a transaction was sent but waiting for its receipt
// failed. Callers must not send it again before the receipt is resolved.
type TransactionPendingError struct {
	TxHash common.Hash
	Cause  error
}

func (e *TransactionPendingError) Error() string {
	return fmt.Sprintf("transaction %s sent but not confirmed: %v", e.TxHash.Hex(), e.Cause)
}

func (e *TransactionPendingError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransactionPending, e.Cause}
	}

	return []error{ErrTransactionPending}
}

func NewTransactionPendingError(txHash common.Hash, cause error) *TransactionPendingError {
	return &TransactionPendingError{TxHash: txHash, Cause: cause}
}
