package codec

import "fmt"

// TagParseError reports a required tag that is missing, duplicated, out of
// order, or whose content fails its field decoder.
type TagParseError struct {
	Tag    string
	Reason string
}

func (e *TagParseError) Error() string {
	return fmt.Sprintf("parse <%s>: %s", e.Tag, e.Reason)
}

// TradeParseError reports a trade body that does not match the trade
// grammar, or a trade/answer combination the protocol forbids.
type TradeParseError struct {
	Text   string
	Reason string
}

func (e *TradeParseError) Error() string {
	return fmt.Sprintf("parse trade %q: %s", e.Text, e.Reason)
}
