package mailer

import "embed"

const (
	FromName            = "Transit Cooperative"
	maxRetires          = 3
	CredentialsTemplate = "test_credentials.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
