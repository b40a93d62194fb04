package email

// Attachment is a file attached to an email message.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is an outgoing email message.
type Email struct {
	From        string
	To          []string
	Cc          []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}
