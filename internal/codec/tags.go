package codec

// Wire tag names. Spelling and order are part of the protocol: every turn
// must contain each tag exactly once, in the order listed in wireSchema.
const (
	ProposalCountTag = "proposal count"
	ResourcesTag     = "my resources"
	GoalsTag         = "my goals"
	ReasoningTag     = "reason"
	PlayerAnswerTag  = "player answer"
	ProposedTradeTag = "newly proposed trade"
	MessageTag       = "message"
)

// NoneValue is the literal required in the trade tag for non-PROPOSAL
// answers.
const NoneValue = "NONE"

// Answer is the public decision a player emits each turn.
type Answer string

const (
	AnswerProposal Answer = "PROPOSAL"
	AnswerAccept   Answer = "ACCEPT"
	AnswerReject   Answer = "REJECT"
)

// Terminal reports whether the answer ends the game.
func (a Answer) Terminal() bool {
	return a == AnswerAccept || a == AnswerReject
}
