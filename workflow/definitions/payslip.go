package definitions

import (
	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Payslip builds the payslip lifecycle, a strict linear chain with no
// branching and no rework loop:
//
//	generated -> validated -> sent -> paid
//
// paid is final.
func Payslip() *workflow.Definition {
	return &workflow.Definition{
		EntityType: workflow.EntityPayslip,
		States: []workflow.State{
			{
				Name:           "generated",
				Label:          "Generated",
				Initial:        true,
				AllowedActions: []workflow.Action{workflow.ActionValidate},
			},
			{
				Name:           "validated",
				Label:          "Validated",
				AllowedActions: []workflow.Action{workflow.ActionSend},
			},
			{
				Name:           "sent",
				Label:          "Sent",
				AllowedActions: []workflow.Action{workflow.ActionMarkPaid},
			},
			{
				Name:  "paid",
				Label: "Paid",
				Final: true,
			},
		},
		Transitions: []workflow.Transition{
			{
				From:     "generated",
				To:       "validated",
				Action:   workflow.ActionValidate,
				Requires: capability.New("payslip.validate.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payslip_validated"),
				},
			},
			{
				From:     "validated",
				To:       "sent",
				Action:   workflow.ActionSend,
				Requires: capability.New("payslip.send.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payslip_sent"),
					notify("contractor", "payslip_sent"),
				},
			},
			{
				From:     "sent",
				To:       "paid",
				Action:   workflow.ActionMarkPaid,
				Requires: capability.New("payslip.mark_paid.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("payslip_paid"),
					notify("contractor", "payslip_paid"),
				},
			},
		},
	}
}
