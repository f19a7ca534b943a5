package specification

import "github.com/google/uuid"

// OwnedChat selects one chat only when it belongs to the user. A chat owned by
// someone else is indistinguishable from a missing one.
func OwnedChat(chatID, userID uuid.UUID) []Specification {
	return []Specification{
		ByID{ID: chatID},
		UserOwnedBy{UserID: userID},
	}
}
