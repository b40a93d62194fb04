package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	PaymentHandler          *PaymentHandler
	AdminPaymentHandler     *AdminPaymentHandler
	NotificationHandler     *NotificationHandler
	UserNotificationHandler *UserNotificationHandler
}
