package definitions

import (
	"github.com/crewledger/crew-common/capability"
	"github.com/crewledger/crew-common/workflow"
)

// Remittance builds the remittance lifecycle:
//
//	generated -> validated -> sent
//
// The sent state carries an auto-transition hint toward processing for the
// external remittance scheduler; the engine itself only models the two
// explicit edges and never fires the hinted one. pending, processing,
// completed and failed exist in the vocabulary without authored edges and
// are kept as declared-but-unreachable placeholders.
func Remittance() *workflow.Definition {
	return &workflow.Definition{
		EntityType: workflow.EntityRemittance,
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
				Name:        "sent",
				Label:       "Sent",
				Description: "Handed to the payment rail; the scheduler advances it",
				Metadata: map[string]any{
					workflow.MetaAutoTransition: "processing",
				},
			},
			{Name: "pending", Label: "Pending"},
			{Name: "processing", Label: "Processing"},
			{Name: "completed", Label: "Completed"},
			{Name: "failed", Label: "Failed"},
		},
		Transitions: []workflow.Transition{
			{
				From:     "generated",
				To:       "validated",
				Action:   workflow.ActionValidate,
				Requires: capability.New("remittance.validate.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("remittance_validated"),
				},
			},
			{
				From:     "validated",
				To:       "sent",
				Action:   workflow.ActionSend,
				Requires: capability.New("remittance.send.global"),
				SideEffects: []workflow.SideEffect{
					auditLog("remittance_sent"),
					notify("finance", "remittance_sent"),
				},
			},
		},
	}
}
