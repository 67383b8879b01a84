package contract

import (
	"fmt"
	"time"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/pkg/accounting"
)

type Action string

const (
	ActionActivate      Action = "activate"
	ActionCancel        Action = "cancel"
	ActionReceiveAsset  Action = "receive_asset"
	ActionExtend        Action = "extend"
	ActionRedeem        Action = "redeem"
	ActionLiquidate     Action = "liquidate"
	ActionRecordPayment Action = "record_payment"
	ActionDeletePayment Action = "delete_payment"
	ActionInspect       Action = "inspect"
	ActionMarkOverdue   Action = "mark_overdue"
)

var (
	openStates    = []Status{StatusActive, StatusExtended, StatusOverdue}
	pendingStates = []Status{StatusDraft, StatusActive, StatusExtended, StatusLiquidating}
)

// rule: allowed source states and the resulting state ("" keeps the current one).
type rule struct {
	from []Status
	to   Status
}

// LIQUIDATING has no inbound rule; liquidation closes in one step.
var rules = map[Action]rule{
	ActionActivate:      {from: []Status{StatusDraft}, to: StatusActive},
	ActionCancel:        {from: []Status{StatusDraft}, to: StatusCancelled},
	ActionReceiveAsset:  {from: openStates},
	ActionExtend:        {from: openStates, to: StatusExtended},
	ActionRedeem:        {from: openStates, to: StatusRedeemed},
	ActionLiquidate:     {from: openStates, to: StatusLiquidated},
	ActionRecordPayment: {from: openStates},
	ActionDeletePayment: {from: openStates},
	ActionInspect:       {from: openStates},
	ActionMarkOverdue:   {from: pendingStates, to: StatusOverdue},
}

// TransitionError names the (status, action) pair that was refused.
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s a contract in status %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool { return target == apperr.ErrInvalidTransition }

// Transition returns the status that results from applying a to a contract
// in status from.
func Transition(from Status, a Action) (Status, error) {
	r, ok := rules[a]
	if !ok || !contains(r.from, from) {
		return from, &TransitionError{From: from, Action: a}
	}
	if r.to == "" {
		return from, nil
	}
	return r.to, nil
}

// Allowed lists the actions a contract in status s accepts, in a stable order.
func Allowed(s Status) []Action {
	out := make([]Action, 0, len(rules))
	for _, a := range []Action{
		ActionActivate, ActionCancel, ActionReceiveAsset, ActionExtend, ActionRedeem,
		ActionLiquidate, ActionRecordPayment, ActionDeletePayment, ActionInspect, ActionMarkOverdue,
	} {
		if contains(rules[a].from, s) {
			out = append(out, a)
		}
	}
	return out
}

func IsTerminal(s Status) bool {
	return s == StatusRedeemed || s == StatusLiquidated || s == StatusCancelled
}

func IsOpen(s Status) bool { return contains(openStates, s) }

func OpenStates() []Status { return append([]Status(nil), openStates...) }

// Effective derives OVERDUE for any non-terminal contract whose due date
// has passed. It is applied on read; nothing persists it but Reconcile.
func Effective(s Status, due *time.Time, now time.Time) Status {
	if !IsTerminal(s) && accounting.DaysOverdue(due, now) > 0 {
		return StatusOverdue
	}
	return s
}

func contains(list []Status, s Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
