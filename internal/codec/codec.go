// Package codec decodes a player's raw turn output against the fixed tag
// grammar and partitions the result into public and secret halves. The
// public half is the only content ever forwarded to the opposing player.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/trade-game/internal/resource"
)

// PublicInfo is the opponent-visible part of a turn.
type PublicInfo struct {
	Answer  Answer          `yaml:"answer"`
	Trade   *resource.Trade `yaml:"trade"` // nil means NONE
	Message string          `yaml:"message"`
}

// SecretInfo is visible only in the acting player's own record.
type SecretInfo struct {
	Resources     resource.Ledger `yaml:"resources"`
	Goals         string          `yaml:"goals"`
	Reasoning     string          `yaml:"reasoning"`
	ProposalCount int             `yaml:"proposal_count"`
}

// AgentMessage is one decoded turn. The Public/Secret split is a hard
// boundary: callers forward RenderPublic to the opponent, never the raw
// text or the secret half.
type AgentMessage struct {
	Public PublicInfo `yaml:"public"`
	Secret SecretInfo `yaml:"secret"`
}

// visibility marks where a decoded field lands.
type visibility int

const (
	secretField visibility = iota
	publicField
)

type fieldSpec struct {
	tag    string
	vis    visibility
	decode func(content string, m *AgentMessage) error
	encode func(m AgentMessage) string
}

// wireSchema is the ordered tag grammar. Parse walks it once; order,
// completeness and the public/secret partition are all read off this list.
var wireSchema = []fieldSpec{
	{ProposalCountTag, secretField, decodeProposalCount, nil},
	{ResourcesTag, secretField, decodeResources, nil},
	{GoalsTag, secretField, func(c string, m *AgentMessage) error {
		m.Secret.Goals = c
		return nil
	}, nil},
	{ReasoningTag, secretField, func(c string, m *AgentMessage) error {
		m.Secret.Reasoning = c
		return nil
	}, nil},
	{PlayerAnswerTag, publicField, decodeAnswer, func(m AgentMessage) string {
		return string(m.Public.Answer)
	}},
	{ProposedTradeTag, publicField, decodeTrade, func(m AgentMessage) string {
		return m.Public.Trade.String()
	}},
	{MessageTag, publicField, func(c string, m *AgentMessage) error {
		m.Public.Message = c
		return nil
	}, func(m AgentMessage) string {
		return m.Public.Message
	}},
}

// Parse decodes one raw turn. Every tag in the grammar must appear exactly
// once and in order; unknown extra tags are ignored. Tag-level failures are
// TagParseError, trade grammar failures are TradeParseError.
func Parse(raw string) (AgentMessage, error) {
	var m AgentMessage
	prevPos := -1
	for _, field := range wireSchema {
		content, pos, err := extractTag(raw, field.tag)
		if err != nil {
			return AgentMessage{}, err
		}
		if pos < prevPos {
			return AgentMessage{}, &TagParseError{Tag: field.tag, Reason: "tag is out of order"}
		}
		prevPos = pos
		if err := field.decode(strings.TrimSpace(content), &m); err != nil {
			return AgentMessage{}, err
		}
	}
	return m, nil
}

// extractTag returns the content of <tag>...</tag> and the position of the
// opening tag in raw.
func extractTag(raw, tag string) (string, int, error) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(raw, open)
	if start < 0 {
		return "", 0, &TagParseError{Tag: tag, Reason: "tag is missing"}
	}
	if strings.Count(raw, open) > 1 {
		return "", 0, &TagParseError{Tag: tag, Reason: "tag appears more than once"}
	}
	body := raw[start+len(open):]
	end := strings.Index(body, closing)
	if end < 0 {
		return "", 0, &TagParseError{Tag: tag, Reason: "tag is not closed"}
	}
	return body[:end], start, nil
}

func decodeProposalCount(content string, m *AgentMessage) error {
	count, err := strconv.Atoi(content)
	if err != nil {
		return &TagParseError{Tag: ProposalCountTag, Reason: fmt.Sprintf("want an integer, got %q", content)}
	}
	if count < 0 {
		return &TagParseError{Tag: ProposalCountTag, Reason: fmt.Sprintf("want a non-negative count, got %d", count)}
	}
	m.Secret.ProposalCount = count
	return nil
}

func decodeResources(content string, m *AgentMessage) error {
	ledger, err := resource.ParseLedger(content)
	if err != nil {
		return &TagParseError{Tag: ResourcesTag, Reason: err.Error()}
	}
	m.Secret.Resources = ledger
	return nil
}

func decodeAnswer(content string, m *AgentMessage) error {
	switch Answer(content) {
	case AnswerProposal, AnswerAccept, AnswerReject:
		m.Public.Answer = Answer(content)
		return nil
	}
	return &TagParseError{
		Tag:    PlayerAnswerTag,
		Reason: fmt.Sprintf("want PROPOSAL, ACCEPT or REJECT, got %q", content),
	}
}

// decodeTrade runs after decodeAnswer per wireSchema order: a PROPOSAL must
// carry a parseable trade, any other answer must carry the literal NONE.
func decodeTrade(content string, m *AgentMessage) error {
	if m.Public.Answer == AnswerProposal {
		trade, err := resource.ParseTrade(content)
		if err != nil {
			return &TradeParseError{Text: content, Reason: err.Error()}
		}
		if trade == nil {
			return &TradeParseError{Text: content, Reason: "a PROPOSAL must name a trade, not NONE"}
		}
		m.Public.Trade = trade
		return nil
	}
	if content != NoneValue {
		return &TradeParseError{
			Text:   content,
			Reason: fmt.Sprintf("trade must be NONE when the answer is %s", m.Public.Answer),
		}
	}
	m.Public.Trade = nil
	return nil
}

// RenderPublic formats the opponent-visible tags of a decoded turn. It is
// driven by the schema's visibility markers, so secret fields structurally
// cannot pass through here.
func (m AgentMessage) RenderPublic() string {
	var parts []string
	for _, field := range wireSchema {
		if field.vis != publicField {
			continue
		}
		parts = append(parts, fmt.Sprintf("<%s> %s </%s>", field.tag, field.encode(m), field.tag))
	}
	return strings.Join(parts, "\n")
}
