package definitions

import (
	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Payment builds the payment lifecycle:
//
//	pending -> received -> confirmed
//	pending -> partially_received -> received | confirmed
//
// confirmed is final. processing, completed, failed and refunded are part of
// the payment state vocabulary but have no authored edges yet; they are kept
// as declared-but-unreachable placeholders rather than deleted, since wiring
// them would mean guessing guard conditions for business rules nobody has
// specified.
func Payment() *workflow.Definition {
	return &workflow.Definition{
		EntityType: workflow.EntityPayment,
		States: []workflow.State{
			{
				Name:    "pending",
				Label:   "Pending",
				Initial: true,
				AllowedActions: []workflow.Action{
					workflow.ActionMarkReceived,
					workflow.ActionMarkPartialReceived,
				},
			},
			{
				Name:           "received",
				Label:          "Received",
				AllowedActions: []workflow.Action{workflow.ActionConfirm},
			},
			{
				Name:        "partially_received",
				Label:       "Partially Received",
				Description: "Only part of the expected amount has arrived",
				AllowedActions: []workflow.Action{
					workflow.ActionMarkReceived,
					workflow.ActionConfirm,
				},
			},
			{
				Name:  "confirmed",
				Label: "Confirmed",
				Final: true,
			},
			{Name: "processing", Label: "Processing"},
			{Name: "completed", Label: "Completed"},
			{Name: "failed", Label: "Failed"},
			{Name: "refunded", Label: "Refunded"},
		},
		Transitions: []workflow.Transition{
			{
				From:     "pending",
				To:       "received",
				Action:   workflow.ActionMarkReceived,
				Requires: capability.New("payment.mark_received.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payment_received"),
				},
			},
			{
				From:     "pending",
				To:       "partially_received",
				Action:   workflow.ActionMarkPartialReceived,
				Requires: capability.New("payment.mark_received.global"),
				Conditions: []workflow.Condition{
					notEmpty("amountReceived", "Amount received is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("payment_partially_received"),
					notify("finance", "payment_partially_received"),
				},
			},
			{
				From:     "partially_received",
				To:       "received",
				Action:   workflow.ActionMarkReceived,
				Requires: capability.New("payment.mark_received.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payment_received"),
				},
			},
			{
				From:     "received",
				To:       "confirmed",
				Action:   workflow.ActionConfirm,
				Requires: capability.New("payment.confirm.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payment_confirmed"),
					notify("contractor", "payment_confirmed"),
				},
			},
			{
				From:     "partially_received",
				To:       "confirmed",
				Action:   workflow.ActionConfirm,
				Requires: capability.New("payment.confirm.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payment_confirmed"),
					notify("contractor", "payment_confirmed"),
				},
			},
		},
	}
}
