package governance

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Admission errors.
var (
	ErrAlreadyInvalidated      = errors.New("this proposal has been marked as invalid")
	ErrPriorNotResolvedInvalid = errors.New("previous proposal was not invalidated")
	ErrUnexpectedQuestionID    = errors.New("unexpected question id")
	ErrQuestionPending         = errors.New("question sent but not confirmed")
)

// Execution gate errors.
var (
	ErrNoBinding                 = errors.New("no question id set for provided proposal")
	ErrInvalidated               = errors.New("proposal has been invalidated")
	ErrUnexpectedTransactionHash = errors.New("unexpected transaction hash")
	ErrPreviousNotExecuted       = errors.New("previous transaction not executed yet")
	ErrNotApproved               = errors.New("transaction was not approved")
	ErrBondTooLow                = errors.New("bond on question not high enough")
	ErrCooldownNotElapsed        = errors.New("wait for additional cooldown")
	ErrAnswerExpired             = errors.New("answer has expired")
	ErrAlreadyExecuted           = errors.New("cannot execute transaction again")
	ErrExecutionFailed           = errors.New("module transaction failed")
	ErrExecutionPending          = errors.New("module transaction sent but not confirmed")
)

// Invalidation errors.
var (
	ErrAnswersNeverExpire        = errors.New("answers are valid forever")
	ErrProposalAlreadyInvalid    = errors.New("proposal is already invalidated")
	ErrOnlyPositiveAnswersExpire = errors.New("only positive answers can expire")
	ErrAnswerNotExpired          = errors.New("answer has not expired yet")
)

// ErrNotAuthorized is returned when the caller is not the executor of the deployment.
var ErrNotAuthorized = errors.New("not authorized")

// IsPermanent reports whether err can never succeed for the same proposal identity, no matter how
// long the caller waits. Every other rejection may pass once the blocking condition changes.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrAlreadyInvalidated) ||
		errors.Is(err, ErrUnexpectedQuestionID) ||
		errors.Is(err, ErrInvalidated) ||
		errors.Is(err, ErrAlreadyExecuted)
}

// UnexpectedQuestionIDError is returned when the oracle returns a question id that differs from
// the locally derived one.
type UnexpectedQuestionIDError struct {
	Expected common.Hash
	Actual   common.Hash
}

// NewUnexpectedQuestionIDError creates a new UnexpectedQuestionIDError.
func NewUnexpectedQuestionIDError(expected, actual common.Hash) *UnexpectedQuestionIDError {
	return &UnexpectedQuestionIDError{Expected: expected, Actual: actual}
}

func (e *UnexpectedQuestionIDError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrUnexpectedQuestionID, e.Expected.Hex(), e.Actual.Hex())
}

func (e *UnexpectedQuestionIDError) Unwrap() error {
	return ErrUnexpectedQuestionID
}

// UnexpectedTransactionHashError is returned when a transaction does not hash to the committed
// hash at the given index.
type UnexpectedTransactionHashError struct {
	Index    int
	Expected common.Hash
	Actual   common.Hash
}

// NewUnexpectedTransactionHashError creates a new UnexpectedTransactionHashError. Expected is
// zero when index is out of range.
func NewUnexpectedTransactionHashError(index int, expected, actual common.Hash) *UnexpectedTransactionHashError {
	return &UnexpectedTransactionHashError{Index: index, Expected: expected, Actual: actual}
}

func (e *UnexpectedTransactionHashError) Error() string {
	return fmt.Sprintf("%s at index %d: expected %s, got %s",
		ErrUnexpectedTransactionHash, e.Index, e.Expected.Hex(), e.Actual.Hex())
}

func (e *UnexpectedTransactionHashError) Unwrap() error {
	return ErrUnexpectedTransactionHash
}

// BondTooLowError is returned when the bond on the answer is below the minimum bond.
type BondTooLowError struct {
	Bond    *big.Int
	Minimum *big.Int
}

func NewBondTooLowError(bond, minimum *big.Int) *BondTooLowError {
	return &BondTooLowError{Bond: bond, Minimum: minimum}
}

func (e *BondTooLowError) Error() string {
	return fmt.Sprintf("%s: bond %s, minimum %s", ErrBondTooLow, e.Bond, e.Minimum)
}

func (e *BondTooLowError) Unwrap() error {
	return ErrBondTooLow
}

// CooldownNotElapsedError is returned when executing before the end of the cooldown.
type CooldownNotElapsedError struct {
	ExecutableAt uint64
	Now          uint64
}

func NewCooldownNotElapsedError(executableAt, now uint64) *CooldownNotElapsedError {
	return &CooldownNotElapsedError{ExecutableAt: executableAt, Now: now}
}

func (e *CooldownNotElapsedError) Error() string {
	return fmt.Sprintf("%s: executable at %d, now %d", ErrCooldownNotElapsed, e.ExecutableAt, e.Now)
}

func (e *CooldownNotElapsedError) Unwrap() error {
	return ErrCooldownNotElapsed
}

// AnswerExpiredError is returned when the answer is older than the answer expiration.
type AnswerExpiredError struct {
	ExpiredAt uint64
	Now       uint64
}

func NewAnswerExpiredError(expiredAt, now uint64) *AnswerExpiredError {
	return &AnswerExpiredError{ExpiredAt: expiredAt, Now: now}
}

func (e *AnswerExpiredError) Error() string {
	return fmt.Sprintf("%s: expired at %d, now %d", ErrAnswerExpired, e.ExpiredAt, e.Now)
}

func (e *AnswerExpiredError) Unwrap() error {
	return ErrAnswerExpired
}

// NotAuthorizedError is returned when a privileged operation is called by someone other than the
// executor.
type NotAuthorizedError struct {
	Caller common.Address
}

func NewNotAuthorizedError(caller common.Address) *NotAuthorizedError {
	return &NotAuthorizedError{Caller: caller}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotAuthorized, e.Caller.Hex())
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// ExecutionFailedError is returned when the executor reports failure. Cause is nil when the
// executor returned false without an error.
type ExecutionFailedError struct {
	TxHash common.Hash
	Cause  error
}

func NewExecutionFailedError(txHash common.Hash, cause error) *ExecutionFailedError {
	return &ExecutionFailedError{TxHash: txHash, Cause: cause}
}

func (e *ExecutionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrExecutionFailed, e.TxHash.Hex(), e.Cause)
	}

	return fmt.Sprintf("%s: %s", ErrExecutionFailed, e.TxHash.Hex())
}

func (e *ExecutionFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrExecutionFailed, e.Cause}
	}

	return []error{ErrExecutionFailed}
}

// ExecutionPendingError is returned when the executor sent the transaction but could not confirm
// it. The transaction stays marked as executed and is never sent again.
type ExecutionPendingError struct {
	TxHash common.Hash
	Cause  error
}

func NewExecutionPendingError(txHash common.Hash, cause error) *ExecutionPendingError {
	return &ExecutionPendingError{TxHash: txHash, Cause: cause}
}

func (e *ExecutionPendingError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExecutionPending, e.TxHash.Hex(), e.Cause)
}

func (e *ExecutionPendingError) Unwrap() []error {
	return []error{ErrExecutionPending, e.Cause}
}
