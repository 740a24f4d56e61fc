package models

// Action is the write decision for one conversation.
type Action string

const (
	ActionNew    Action = "new"
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
)

// PlanItem is the decided action for a single conversation.
type PlanItem struct {
	UID        string
	Title      string
	Action     Action
	TargetPath string
	Reason     string
}

// Plan is the ordered set of per-conversation actions, computed in full
// before any write occurs.
type Plan struct {
	Items []PlanItem
}

// Counts tallies the plan by action.
func (p *Plan) Counts() (newCount, updateCount, skipCount int) {
	for _, item := range p.Items {
		switch item.Action {
		case ActionNew:
			newCount++
		case ActionUpdate:
			updateCount++
		case ActionSkip:
			skipCount++
		}
	}
	return newCount, updateCount, skipCount
}
