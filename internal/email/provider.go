package email

// Provider defines the interface for sending email
type Provider interface {
	// Send sends an email message
	Send(email *Email) error

	// Validate checks the provider configuration
	Validate() error

	// Close releases provider resources
	Close() error
}
