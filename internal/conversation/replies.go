package conversation

import (
	"fmt"
	"strings"

	"github.com/padyakph/hatidbot/internal/booking"
)

const (
	welcomeReply        = "👋 Welcome to Hatid Delivery Bot!\n\nPlease choose an option below:"
	askRecipientReply   = "📦 Who is the recipient?"
	askBookerReply      = "👤 Who is booking this delivery?"
	askDropOffReply     = "📍 Where is the drop-off location?"
	askPickUpReply      = "🚚 Where is the pick-up location?"
	askDescriptionReply = "📝 Please provide description or package details."
	askDistanceReply    = "⚠️ Couldn't calculate distance automatically. Please type distance in km:"
	invalidNumberReply  = "❌ Please type a valid number for distance in km (e.g. 3.5)"
	beSpecificReply     = "✏️ Please be more specific. One or two characters isn't enough to go on."
	unknownReply        = "🤖 I don't understand. Type /book to start a booking or /mybookings to see past bookings."
	noBookingsReply     = "📑 You don't have any bookings yet. Type /book to create one."
	listFailedReply     = "⚠️ Sorry, there was an error fetching your bookings."
	saveFailedReply     = "⚠️ Sorry, your booking could not be saved. Type the distance in km again to retry."
)

func confirmationReply(b booking.Booking) string {
	return fmt.Sprintf(
		"✅ Booking confirmed!\n\n"+
			"📦 Recipient: %s\n"+
			"👤 Booker: %s\n"+
			"📍 Drop-off: %s\n"+
			"🚚 Pick-up: %s\n"+
			"📝 Details: %s\n"+
			"📏 Distance: %.2f km\n\n"+
			"💵 Fee: ₱%.2f",
		b.RecipientName, b.BookerName, b.DropOff, b.PickUp,
		b.Description, b.DistanceKm, b.Fee,
	)
}

func bookingListReply(items []booking.Booking) string {
	var sb strings.Builder
	sb.WriteString("📑 Your recent bookings:\n\n")
	for _, b := range items {
		fmt.Fprintf(&sb,
			"📦 Recipient: %s\n"+
				"👤 Booker: %s\n"+
				"📍 Drop-off: %s\n"+
				"🚚 Pick-up: %s\n"+
				"📝 %s\n"+
				"💵 Fee: ₱%.2f\n"+
				"📅 %s\n\n",
			b.RecipientName, b.BookerName, b.DropOff, b.PickUp,
			b.Description, b.Fee, b.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return strings.TrimRight(sb.String(), "\n")
}
