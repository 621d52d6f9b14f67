package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"tarot-server/internal/config"
	"tarot-server/pkg/playable"
	"tarot-server/pkg/playable/tarot"
)

var (
	seed     = flag.Int64("seed", 0, "replay the session with this seed (> 0)")
	headless = flag.Bool("headless", false, "never prompt, choices are made at random")
	fast     = flag.Bool("fast", false, "skip the pauses between card moves")
)

func main() {
	flag.Parse()
	setupLogger()

	opts, err := config.Instance().TarotOptions()
	if err != nil {
		logrus.WithError(err).Fatal("invalid tarot configuration")
	}

	if *seed > 0 {
		opts.Seed = *seed
	}

	if *fast {
		opts.Pacing = tarot.Pacing{}
	}

	game, err := tarot.NewGame(opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not create the game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := !*headless && term.IsTerminal(int(os.Stdin.Fd()))
	var prompts chan tarot.InputKind
	if interactive {
		prompts = make(chan tarot.InputKind, 1)
		game.Observe(func(n tarot.Notification) {
			switch n.Type {
			case tarot.NotificationAwaitingInput:
				prompts <- n.Input
			case tarot.NotificationUnauthorizedChoice:
				pterm.Warning.Println("this card cannot be chosen")
			case tarot.NotificationState:
				pterm.Debug.Println(n.State)
			}
		})
	}

	logsDone := make(chan struct{})
	go func() {
		defer close(logsDone)
		for msgs := range game.LogChan() {
			for _, msg := range msgs {
				printLogMessage(interactive, msg)
			}
		}
	}()

	if err := game.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("could not start the game")
	}

	done := make(chan error, 1)
	go func() { done <- game.Wait() }()

	for err == nil {
		select {
		case kind := <-prompts:
			if perr := prompt(game, opts.HumanSeat, kind); perr != nil {
				logrus.WithError(perr).Error("could not read the choice")
				stop()
			}
		case err = <-done:
			if err == nil {
				err = errFinished
			}
		}
	}

	if !errors.Is(err, errFinished) && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("the game failed")
	}

	printSummary(game, opts.HumanSeat)
	game.Quit()
	<-logsDone
}

var errFinished = errors.New("finished")

func prompt(game *tarot.Game, seat tarot.Seat, kind tarot.InputKind) error {
	switch kind {
	case tarot.PickCard:
		n := game.GetState().ToPick
		answer, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("Pick a card to choose the dealer (0-%d)", n-1)).
			Show()
		if err != nil {
			return err
		}

		index, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			index = -1
		}

		return game.Supply(index)
	case tarot.ChooseBid:
		printHand(game, seat)

		options := make([]string, len(tarot.Bids))
		for i, bid := range tarot.Bids {
			options[i] = bid.String()
		}

		answer, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your bid").
			WithOptions(options).
			Show()
		if err != nil {
			return err
		}

		for _, bid := range tarot.Bids {
			if bid.String() == answer {
				return game.Supply(int(bid))
			}
		}

		return game.Supply(int(tarot.Pass))
	case tarot.ChooseEcartCard:
		cards := ownCards(game, seat)
		options := make([]string, len(cards))
		for i, c := range cards {
			options[i] = fmt.Sprintf("%2d  %s", i, c.Name)
		}

		answer, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Put a card in the ecart").
			WithOptions(options).
			WithMaxHeight(len(options)).
			Show()
		if err != nil {
			return err
		}

		index, err := strconv.Atoi(strings.TrimSpace(strings.Fields(answer)[0]))
		if err != nil {
			return err
		}

		return game.Supply(index)
	}

	return nil
}

func ownCards(game *tarot.Game, seat tarot.Seat) []*tarot.CardView {
	for _, h := range game.GetSeatState(seat).Hands {
		if h.Seat == seat {
			return h.Cards
		}
	}

	return nil
}

func printHand(game *tarot.Game, seat tarot.Seat) {
	names := []string{}
	for _, c := range ownCards(game, seat) {
		names = append(names, c.Name)
	}

	pterm.DefaultSection.Println("Your hand")
	pterm.Println(strings.Join(names, " "))
}

func printLogMessage(interactive bool, msg *playable.LogMessage) {
	text := msg.Message
	if len(msg.Seats) > 0 {
		text = strings.Replace(text, "{}", msg.Seats[0], 1)
	}

	if len(msg.Cards) > 0 {
		names := make([]string, len(msg.Cards))
		for i, c := range msg.Cards {
			names[i] = c.Name()
		}
		text += ": " + strings.Join(names, ", ")
	}

	if interactive {
		pterm.Info.Println(text)
		return
	}

	logrus.WithField("seats", msg.Seats).Info(text)
}

func printSummary(game *tarot.Game, seat tarot.Seat) {
	state := game.GetSeatState(seat)
	logger := logrus.WithFields(logrus.Fields{
		"state": state.State,
		"deals": state.Deals,
	})

	if winner, ok := game.Winner(); ok {
		for _, h := range state.Hands {
			if h.Seat == winner {
				logger = logger.WithField("winner", winner).WithField("bid", h.Bid)
			}
		}
	}

	if err := game.Audit(); err != nil {
		logger.WithError(err).Error("cards are not where they should be")
		return
	}

	logger.Info("session over")
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
