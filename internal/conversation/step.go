// Package conversation implements the per-chat booking dialogue as an
// explicit finite state machine.
package conversation

// Step identifies the conversation's position in the booking dialogue.
type Step string

const (
	// StepIdle indicates there is no active booking dialogue with the chat.
	StepIdle Step = "idle"
	// StepRecipient awaits the recipient's name.
	StepRecipient Step = "recipient"
	// StepBooker awaits the booker's name.
	StepBooker Step = "booker"
	// StepDropOff awaits the drop-off address.
	StepDropOff Step = "drop_off"
	// StepPickUp awaits the pick-up address.
	StepPickUp Step = "pick_up"
	// StepDescription awaits the package description.
	StepDescription Step = "description"
	// StepDistance awaits a manually typed distance after automatic
	// resolution failed or a booking write failed.
	StepDistance Step = "distance"
)

// Draft accumulates booking fields while the dialogue is in progress.
type Draft struct {
	RecipientName string
	BookerName    string
	DropOff       string
	PickUp        string
	Description   string
}
