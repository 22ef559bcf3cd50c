package entities

// ReminderPayload is used to build a study reminder message.
type ReminderPayload struct {
	BankID   string
	Progress Progress
}
