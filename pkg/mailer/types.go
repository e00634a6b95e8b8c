package mailer

import "fmt"

// Tags label a message for filtering in the provider dashboard.
// A struct{}{} value marks a presence-only tag.
type Tags map[string]any

// SimpleTags builds presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats an address as "Name <email>", or returns email alone
// when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a rendered document addressed to individual inboxes.
// Digests reach subscribers as campaigns, so this carries test copies only.
type Email struct {
	To      []string
	From    string // empty means the sender's configured address
	Subject string
	HTML    string
	Text    string
	Tags    Tags
}
