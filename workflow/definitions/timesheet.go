package definitions

import (
	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Timesheet builds the timesheet lifecycle:
//
//	draft -> submitted -> under_review -> approved | rejected | changes_requested
//	         submitted -> approved | rejected | changes_requested (direct)
//	         changes_requested -> submitted (rework loop)
//
// approved and rejected are final. Submitting requires a non-empty
// totalHours; rejecting and requesting changes require a stated reason.
func Timesheet() *workflow.Definition {
	return &workflow.Definition{
		EntityType: workflow.EntityTimesheet,
		States: []workflow.State{
			{
				Name:           "draft",
				Label:          "Draft",
				Description:    "Being filled in by the contractor",
				Initial:        true,
				AllowedActions: []workflow.Action{workflow.ActionSubmit},
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
				Name:  "approved",
				Label: "Approved",
				Final: true,
			},
			{
				Name:  "rejected",
				Label: "Rejected",
				Final: true,
			},
			{
				Name:           "changes_requested",
				Label:          "Changes Requested",
				Description:    "Returned to the contractor for rework",
				AllowedActions: []workflow.Action{workflow.ActionSubmit},
			},
		},
		Transitions: []workflow.Transition{
			{
				From:     "draft",
				To:       "submitted",
				Action:   workflow.ActionSubmit,
				Requires: capability.New("timesheet.submit.own"),
				Conditions: []workflow.Condition{
					notEmpty("totalHours", "Total hours is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_submitted"),
					notify("reviewer", "timesheet_submitted"),
				},
			},
			{
				From:     "submitted",
				To:       "under_review",
				Action:   workflow.ActionReview,
				Requires: capability.New("timesheet.review.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_review_started"),
				},
			},
			{
				From:     "submitted",
				To:       "approved",
				Action:   workflow.ActionApprove,
				Requires: capability.New("timesheet.approve.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_approved"),
					notify("contractor", "timesheet_approved"),
				},
			},
			{
				From:   "submitted",
				To:     "rejected",
				Action: workflow.ActionReject,
				Requires: capability.New(
					"timesheet.review.global",
					"timesheet.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("rejectionReason", "Rejection reason is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_rejected"),
					notify("contractor", "timesheet_rejected"),
				},
			},
			{
				From:   "submitted",
				To:     "changes_requested",
				Action: workflow.ActionRequestChanges,
				Requires: capability.New(
					"timesheet.review.global",
					"timesheet.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("changesRequested", "Changes requested is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_changes_requested"),
					notify("contractor", "timesheet_changes_requested"),
				},
			},
			{
				From:     "under_review",
				To:       "approved",
				Action:   workflow.ActionApprove,
				Requires: capability.New("timesheet.approve.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_approved"),
					notify("contractor", "timesheet_approved"),
				},
			},
			{
				From:   "under_review",
				To:     "rejected",
				Action: workflow.ActionReject,
				Requires: capability.New(
					"timesheet.review.global",
					"timesheet.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("rejectionReason", "Rejection reason is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_rejected"),
					notify("contractor", "timesheet_rejected"),
				},
			},
			{
				From:   "under_review",
				To:     "changes_requested",
				Action: workflow.ActionRequestChanges,
				Requires: capability.New(
					"timesheet.review.global",
					"timesheet.approve.global",
				),
				Conditions: []workflow.Condition{
					notEmpty("changesRequested", "Changes requested is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_changes_requested"),
					notify("contractor", "timesheet_changes_requested"),
				},
			},
			{
				From:     "changes_requested",
				To:       "submitted",
				Action:   workflow.ActionSubmit,
				Requires: capability.New("timesheet.submit.own"),
				Conditions: []workflow.Condition{
					notEmpty("totalHours", "Total hours is required"),
				},
				SideEffects: []workflow.SideEffect{
					auditLog("timesheet_resubmitted"),
					notify("reviewer", "timesheet_submitted"),
				},
				Metadata: reworkLoop(),
			},
		},
	}
}
