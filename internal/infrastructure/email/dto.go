package email

type EmailRequest struct {
	To          []string     // Recipients
	Cc          []string     // Carbon copy (optional)
	Subject     string       // Email subject
	Body        string       // Email body (HTML or plain text)
	IsHTML      bool         // true for HTML, false for plain text
	Attachments []Attachment // File attachments (optional)
}

type Attachment struct {
	Filename string
	Content  []byte
}

// SMTPSettings is the subset of config the SMTP sender needs.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}
