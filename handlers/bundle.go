package handlers

import (
	userRepoPkg "pitchbook/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	User          *UserHandler
	Futsal        *FutsalHandler
	Booking       *BookingHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
	Owner         *OwnerHandler
	WS            *WSHandler
}
