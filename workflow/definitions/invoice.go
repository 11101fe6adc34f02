package definitions

import (
	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Invoice builds the invoice lifecycle:
//
//	draft -> submitted -> under_review -> approved | rejected | changes_requested
//	         submitted -> approved | rejected | changes_requested (direct)
//	         approved -> sent -> paid
//	         overdue -> paid
//	         draft -> cancelled
//	         changes_requested -> submitted (rework loop)
//
// paid, rejected and cancelled are final. The overdue state has no authored
// incoming edge: an external scheduler moves sent invoices past their due
// date there, outside this table.
//
// Submitting requires a non-empty amount; the check is truthiness, so an
// amount of 0 fails it the same way a missing amount does.
func Invoice() *workflow.Definition {
	return &workflow.Definition{
		EntityType: workflow.EntityInvoice,
		States: []workflow.State{
			{
				Name:           "draft",
				Label:          "Draft",
				Initial:        true,
				AllowedActions: []workflow.Action{workflow.ActionSubmit, workflow.ActionCancel},
			},
			{
				Name:  "submitted",
				Label: "Submitted",
				AllowedActions: []workflow.Action{
					workflow.ActionReview,
					workflow.ActionApprove,
					workflow.ActionReject,
					workflow.ActionRequestChanges,
				},
			},
			{
				Name:  "under_review",
				Label: "Under Review",
				AllowedActions: []workflow.Action{
					workflow.ActionApprove,
					workflow.ActionReject,
					workflow.ActionRequestChanges,
				},
			},
			{
				Name:           "approved",
				Label:          "Approved",
				AllowedActions: []workflow.Action{workflow.ActionSend},
			},
			{
				Name:           "sent",
				Label:          "Sent",
				Description:    "Delivered to the client, awaiting payment",
				AllowedActions: []workflow.Action{workflow.ActionMarkPaid},
			},
			{
				Name:  "paid",
				Label: "Paid",
				Final: true,
			},
			{
				Name:           "overdue",
				Label:          "Overdue",
				Description:    "Past due date; set by the billing scheduler",
				AllowedActions: []workflow.Action{workflow.ActionMarkPaid},
			},
			{
				Name:  "rejected",
				Label: "Rejected",
				Final: true,
			},
			{
				Name:  "cancelled",
				Label: "Cancelled",
				Final: true,
			},
			{
				Name:           "changes_requested",
				Label:          "Changes Requested",
				AllowedActions: []workflow.Action{workflow.ActionSubmit},
			},
		},
		Transitions: []workflow.Transition{
			{
				From:     "draft",
				To:       "submitted",
				Action:   workflow.ActionSubmit,
				Requires: capability.New("invoice.submit.own"),
				Conditions: []workflow.Condition{
					notEmpty("amount", "Amount is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_submitted"),
					notify("reviewer", "invoice_submitted"),
				},
			},
			{
				From:     "draft",
				To:       "cancelled",
				Action:   workflow.ActionCancel,
				Requires: capability.New("invoice.cancel.own", "invoice.modify.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_cancelled"),
				},
			},
			{
				From:     "submitted",
				To:       "under_review",
				Action:   workflow.ActionReview,
				Requires: capability.New("invoice.review.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_review_started"),
				},
			},
			{
				From:     "submitted",
				To:       "approved",
				Action:   workflow.ActionApprove,
				Requires: capability.New("invoice.approve.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_approved"),
					notify("contractor", "invoice_approved"),
				},
			},
			{
				From:   "submitted",
				To:     "rejected",
				Action: workflow.ActionReject,
				Requires: capability.New(
					"invoice.review.global",
					"invoice.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("rejectionReason", "Rejection reason is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_rejected"),
					notify("contractor", "invoice_rejected"),
				},
			},
			{
				From:   "submitted",
				To:     "changes_requested",
				Action: workflow.ActionRequestChanges,
				Requires: capability.New(
					"invoice.review.global",
					"invoice.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("changesRequested", "Changes requested is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_changes_requested"),
					notify("contractor", "invoice_changes_requested"),
				},
			},
			{
				From:     "under_review",
				To:       "approved",
				Action:   workflow.ActionApprove,
				Requires: capability.New("invoice.approve.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_approved"),
					notify("contractor", "invoice_approved"),
				},
			},
			{
				From:   "under_review",
				To:     "rejected",
				Action: workflow.ActionReject,
				Requires: capability.New(
					"invoice.review.global",
					"invoice.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("rejectionReason", "Rejection reason is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_rejected"),
					notify("contractor", "invoice_rejected"),
				},
			},
			{
				From:   "under_review",
				To:     "changes_requested",
				Action: workflow.ActionRequestChanges,
				Requires: capability.New(
					"invoice.review.global",
					"invoice.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("changesRequested", "Changes requested is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_changes_requested"),
					notify("contractor", "invoice_changes_requested"),
				},
			},
			{
				From:     "approved",
				To:       "sent",
				Action:   workflow.ActionSend,
				Requires: capability.New("invoice.send.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_sent"),
					notify("client", "invoice_sent"),
				},
			},
			{
				From:     "sent",
				To:       "paid",
				Action:   workflow.ActionMarkPaid,
				Requires: capability.New("invoice.mark_paid.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_paid"),
					notify("contractor", "invoice_paid"),
				},
			},
			{
				From:     "overdue",
				To:       "paid",
				Action:   workflow.ActionMarkPaid,
				Requires: capability.New("invoice.mark_paid.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_paid"),
					notify("contractor", "invoice_paid"),
				},
			},
			{
				From:     "changes_requested",
				To:       "submitted",
				Action:   workflow.ActionSubmit,
				Requires: capability.New("invoice.submit.own"),
				Conditions: []workflow.Condition{
					notEmpty("amount", "Amount is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("invoice_resubmitted"),
					notify("reviewer", "invoice_submitted"),
				},
				Metadata: reworkLoop(),
			},
		},
	}
}
