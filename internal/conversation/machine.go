package conversation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/padyakph/hatidbot/internal/booking"
	"github.com/padyakph/hatidbot/internal/logger"
	"github.com/padyakph/hatidbot/internal/pricing"
)

// Commands recognized verbatim in message text. Matching is case-sensitive
// and exact; anything else is step data or free-form text.
const (
	CmdStart      = "/start"
	CmdBook       = "/book"
	CmdMyBookings = "/mybookings"
)

const (
	recentBookingsLimit = 5
	// Inputs shorter than this are assumed to be accidental and rejected,
	// except a lone digit typed as a manual distance.
	minInputRunes = 3
)

// DistanceResolver turns two address strings into a driving distance.
type DistanceResolver interface {
	ResolveDistance(ctx context.Context, origin, destination string) (float64, bool)
}

// BookingRepository persists confirmed bookings and lists past ones.
type BookingRepository interface {
	Insert(ctx context.Context, b booking.Booking) (booking.Booking, error)
	ListRecent(ctx context.Context, chatID int64, limit int) ([]booking.Booking, error)
}

// Reply is what the machine hands back to the transport for delivery.
type Reply struct {
	Text string
	// ShowMenu asks the transport to attach the start menu keyboard.
	ShowMenu bool
}

// Machine interprets each incoming message against the chat's current step
// and produces the next step and a reply.
type Machine struct {
	store     *Store
	distances DistanceResolver
	bookings  BookingRepository
	log       *slog.Logger
}

// NewMachine wires the state machine to its collaborators.
func NewMachine(store *Store, distances DistanceResolver, bookings BookingRepository) *Machine {
	return &Machine{
		store:     store,
		distances: distances,
		bookings:  bookings,
		log:       logger.Component("conv"),
	}
}

// stepHandler consumes one message while the chat sits on a given step.
type stepHandler func(m *Machine, ctx context.Context, chatID int64, sess *Session, text string) Reply

// transitions is the state table: current step to its message handler.
// Commands and the short-input guard are dispatched before this table.
var transitions = map[Step]stepHandler{
	StepRecipient:   (*Machine).collectRecipient,
	StepBooker:      (*Machine).collectBooker,
	StepDropOff:     (*Machine).collectDropOff,
	StepPickUp:      (*Machine).collectPickUp,
	StepDescription: (*Machine).collectDescription,
	StepDistance:    (*Machine).collectDistance,
}

// HandleMessage processes one inbound text for a chat and returns the reply.
// The whole turn runs under the chat's session lock, so concurrent messages
// from the same chat are serialized.
func (m *Machine) HandleMessage(ctx context.Context, chatID int64, text string) Reply {
	text = strings.TrimSpace(text)

	var reply Reply
	m.store.Do(chatID, func(sess *Session) {
		from := sess.Step
		reply = m.handle(ctx, chatID, sess, text)
		if sess.Step != from {
			m.log.LogAttrs(ctx, slog.LevelDebug, "fsm.transition",
				slog.String("status", "ok"),
				slog.Int64("chat_id", chatID),
				slog.String("from", string(from)),
				slog.String("to", string(sess.Step)),
			)
		}
	})
	return reply
}

func (m *Machine) handle(ctx context.Context, chatID int64, sess *Session, text string) Reply {
	// Commands win over any in-progress step and discard collected data.
	switch text {
	case CmdStart:
		sess.Reset()
		return Reply{Text: welcomeReply, ShowMenu: true}
	case CmdBook:
		sess.Reset()
		sess.Step = StepRecipient
		return Reply{Text: askRecipientReply}
	case CmdMyBookings:
		return m.listBookings(ctx, chatID)
	}

	if tooShort(text) && !(sess.Step == StepDistance && parsesAsFloat(text)) {
		return Reply{Text: beSpecificReply}
	}

	if h, ok := transitions[sess.Step]; ok {
		return h(m, ctx, chatID, sess, text)
	}
	return Reply{Text: unknownReply}
}

func (m *Machine) collectRecipient(_ context.Context, _ int64, sess *Session, text string) Reply {
	sess.Draft.RecipientName = text
	sess.Step = StepBooker
	return Reply{Text: askBookerReply}
}

func (m *Machine) collectBooker(_ context.Context, _ int64, sess *Session, text string) Reply {
	sess.Draft.BookerName = text
	sess.Step = StepDropOff
	return Reply{Text: askDropOffReply}
}

func (m *Machine) collectDropOff(_ context.Context, _ int64, sess *Session, text string) Reply {
	sess.Draft.DropOff = text
	sess.Step = StepPickUp
	return Reply{Text: askPickUpReply}
}

func (m *Machine) collectPickUp(_ context.Context, _ int64, sess *Session, text string) Reply {
	sess.Draft.PickUp = text
	sess.Step = StepDescription
	return Reply{Text: askDescriptionReply}
}

func (m *Machine) collectDescription(ctx context.Context, chatID int64, sess *Session, text string) Reply {
	sess.Draft.Description = text

	km, ok := m.distances.ResolveDistance(ctx, sess.Draft.PickUp, sess.Draft.DropOff)
	if !ok {
		sess.Step = StepDistance
		return Reply{Text: askDistanceReply}
	}
	return m.finalize(ctx, chatID, sess, km)
}

func (m *Machine) collectDistance(ctx context.Context, chatID int64, sess *Session, text string) Reply {
	km, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Reply{Text: invalidNumberReply}
	}
	return m.finalize(ctx, chatID, sess, km)
}

// finalize computes the fee, persists the booking, and resets the dialogue.
// On a failed write the session stays on manual distance entry so the user
// can retry by re-sending the number.
func (m *Machine) finalize(ctx context.Context, chatID int64, sess *Session, km float64) Reply {
	fee := pricing.Fee(km)

	saved, err := m.bookings.Insert(ctx, booking.Booking{
		ChatID:        chatID,
		RecipientName: sess.Draft.RecipientName,
		BookerName:    sess.Draft.BookerName,
		DropOff:       sess.Draft.DropOff,
		PickUp:        sess.Draft.PickUp,
		Description:   sess.Draft.Description,
		DistanceKm:    km,
		Fee:           fee,
	})
	if err != nil {
		m.log.LogAttrs(ctx, slog.LevelError, "booking.insert",
			slog.String("status", "fail"),
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		sess.Step = StepDistance
		return Reply{Text: saveFailedReply}
	}

	sess.Reset()
	return Reply{Text: confirmationReply(saved)}
}

func (m *Machine) listBookings(ctx context.Context, chatID int64) Reply {
	items, err := m.bookings.ListRecent(ctx, chatID, recentBookingsLimit)
	if err != nil {
		m.log.LogAttrs(ctx, slog.LevelError, "booking.list",
			slog.String("status", "fail"),
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		return Reply{Text: listFailedReply}
	}
	if len(items) == 0 {
		return Reply{Text: noBookingsReply}
	}
	return Reply{Text: bookingListReply(items)}
}

func tooShort(text string) bool {
	return len([]rune(text)) < minInputRunes
}

func parsesAsFloat(text string) bool {
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
