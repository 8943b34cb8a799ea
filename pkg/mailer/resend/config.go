package resend

// Config holds Resend transport configuration.
// SenderEmail and SenderName are used for messages without a From address.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}
