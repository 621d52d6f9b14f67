package tarot

import (
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
)

// State is a phase of the session
type State string

// session states
const (
	StateCardsSpreading    State = "CARDS_SPREADING"
	StateDealerChoosing    State = "DEALER_CHOOSING"
	StateDealerChosen      State = "DEALER_CHOSEN"
	StateCardsDealing      State = "CARDS_DEALING"
	StatePetitSecDetected  State = "PETIT_SEC_DETECTED"
	StateBidChoosing       State = "BID_CHOOSING"
	StateBidChosen         State = "BID_CHOSEN"
	StateEcartConstituting State = "ECART_CONSTITUTING"
	StateEcartConstituted  State = "ECART_CONSTITUTED"
	StateEnded             State = "ENDED"
)

var allStates = []State{
	StateCardsSpreading,
	StateDealerChoosing,
	StateDealerChosen,
	StateCardsDealing,
	StatePetitSecDetected,
	StateBidChoosing,
	StateBidChosen,
	StateEcartConstituting,
	StateEcartConstituted,
}

// transitions maps a state to the states it can be entered from.
// Events are named after their destination
var transitions = map[State][]State{
	StateDealerChoosing:    {StateCardsSpreading},
	StateDealerChosen:      {StateDealerChoosing},
	StateCardsDealing:      {StateCardsSpreading, StateDealerChosen, StatePetitSecDetected, StateBidChosen},
	StatePetitSecDetected:  {StateCardsDealing},
	StateBidChoosing:       {StateCardsDealing},
	StateBidChosen:         {StateBidChoosing},
	StateEcartConstituting: {StateBidChosen},
	StateEcartConstituted:  {StateEcartConstituting},
	StateEnded:             allStates,
}

func newStateMachine(onEnter func(State)) *fsm.FSM {
	events := make(fsm.Events, 0, len(transitions))
	for dst, sources := range transitions {
		src := make([]string, len(sources))
		for i, s := range sources {
			src[i] = string(s)
		}

		events = append(events, fsm.EventDesc{
			Name: string(dst),
			Src:  src,
			Dst:  string(dst),
		})
	}

	return fsm.NewFSM(
		string(StateCardsSpreading),
		events,
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { onEnter(State(e.Dst)) },
		},
	)
}

// changeState moves the session to the given state
func (g *Game) changeState(s State) error {
	if err := g.sm.Event(string(s)); err != nil {
		return errors.Wrapf(err, "cannot enter %s from %s", s, g.sm.Current())
	}

	return nil
}

// enteredState runs inside the state machine once a transition is done
func (g *Game) enteredState(s State) {
	g.lock.Lock()
	g.state = s
	g.lock.Unlock()

	g.logger.WithField("state", s).Debug("entered state")
	g.publish(Notification{Type: NotificationState, State: s})
}
