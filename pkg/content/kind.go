package content

import "fmt"

// Kind names the type of content a deployment distributes.
type Kind string

const (
	KindJobs    Kind = "jobs"
	KindLetters Kind = "letters"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindJobs, KindLetters:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, s)
	}
}

func (k Kind) String() string { return string(k) }
