package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// InvalidatedSentinel is the storage value of an invalidated binding. Oracles answer with the
	// same value when a question resolves as invalid.
	InvalidatedSentinel = common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	// AnswerAccepted is the oracle answer that approves a proposal.
	AnswerAccepted = common.BigToHash(common.Big1)

	// AnswerInvalidated is the oracle answer for a question resolved as invalid.
	AnswerInvalidated = InvalidatedSentinel
)

// BindingStatus is the tag of a BindingState.
type BindingStatus uint8

const (
	BindingUnbound BindingStatus = iota
	BindingBound
	BindingInvalidated
)

func (s BindingStatus) String() string {
	switch s {
	case BindingUnbound:
		return "unbound"
	case BindingBound:
		return "bound"
	case BindingInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// BindingState is the state of one question hash slot: never asked, bound to an oracle question,
// or permanently invalidated.
type BindingState struct {
	Status     BindingStatus `json:"status"`
	QuestionID common.Hash   `json:"questionId,omitempty"`
}

// Unbound returns the state of a slot that was never asked.
func Unbound() BindingState {
	return BindingState{Status: BindingUnbound}
}

// Bound returns the state of a slot bound to the given oracle question.
func Bound(questionID common.Hash) BindingState {
	return BindingState{Status: BindingBound, QuestionID: questionID}
}

// Invalidated returns the terminal state of a slot.
func Invalidated() BindingState {
	return BindingState{Status: BindingInvalidated}
}

func (s BindingState) IsUnbound() bool     { return s.Status == BindingUnbound }
func (s BindingState) IsBound() bool       { return s.Status == BindingBound }
func (s BindingState) IsInvalidated() bool { return s.Status == BindingInvalidated }

// Hash encodes the state the way it is laid out in storage: zero for unbound, all ones for
// invalidated and the question id otherwise.
func (s BindingState) Hash() common.Hash {
	switch s.Status {
	case BindingBound:
		return s.QuestionID
	case BindingInvalidated:
		return InvalidatedSentinel
	default:
		return common.Hash{}
	}
}

// BindingStateFromHash decodes a stored slot value.
func BindingStateFromHash(h common.Hash) BindingState {
	switch h {
	case common.Hash{}:
		return Unbound()
	case InvalidatedSentinel:
		return Invalidated()
	default:
		return Bound(h)
	}
}

// IsReservedQuestionID reports whether id collides with one of the storage sentinels and so
// cannot be bound.
func IsReservedQuestionID(id common.Hash) bool {
	return id == (common.Hash{}) || id == InvalidatedSentinel
}

func (s BindingState) String() string {
	if s.IsBound() {
		return fmt.Sprintf("bound(%s)", s.QuestionID.Hex())
	}

	return s.Status.String()
}
