package buses

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Status string

const (
	StatusInService   Status = "in_service"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

// Person is the display-name pair of a profile joined onto a bus.
type Person struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func (p *Person) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type Bus struct {
	ID       uuid.UUID `json:"id"`
	Plate    string    `json:"plate"`
	Alias    *string   `json:"alias"`
	ImageURL *string   `json:"image_url"`
	Status   Status    `json:"status"`
	Owner    *Person   `json:"owner"`
	Driver   *Person   `json:"driver"`
	Official *Person   `json:"official"`
}

// Title is the alias when set, the plate otherwise.
func (b *Bus) Title() string {
	if b.Alias != nil && strings.TrimSpace(*b.Alias) != "" {
		return strings.TrimSpace(*b.Alias)
	}
	return b.Plate
}

// Initials are shown in place of a missing image: the first letter of the
// first two words, or the first two letters of a single word.
func (b *Bus) Initials() string {
	fields := strings.Fields(b.Title())
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		runes := []rune(fields[0])
		if len(runes) > 2 {
			runes = runes[:2]
		}
		return strings.ToUpper(string(runes))
	default:
		first := []rune(fields[0])
		second := []rune(fields[1])
		return strings.ToUpper(string([]rune{first[0], second[0]}))
	}
}

type Store interface {
	ListByStatus(ctx context.Context, status Status, limit int) ([]Bus, error)
}
