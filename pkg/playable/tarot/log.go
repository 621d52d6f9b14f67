package tarot

import (
	"tarot-server/pkg/deck"
	"tarot-server/pkg/playable"
)

func newLogMessage(seat Seat, cards []*deck.Card, format string, a ...interface{}) []*playable.LogMessage {
	var copies []*deck.Card
	for _, c := range cards {
		if c != nil {
			copies = append(copies, cardCopy(c))
		}
	}

	return []*playable.LogMessage{playable.CardLogMessage(seat.String(), copies, format, a...)}
}

func newTableLogMessage(format string, a ...interface{}) []*playable.LogMessage {
	return []*playable.LogMessage{playable.SimpleLogMessage("", format, a...)}
}

// sendLogMessages never blocks the game goroutine
func (g *Game) sendLogMessages(msgs []*playable.LogMessage) {
	select {
	case g.logChan <- msgs:
	default:
		g.logger.Warn("log channel is full, dropping messages")
	}
}
