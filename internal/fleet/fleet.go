package fleet

import (
	"context"

	"transitcoop/internal/domain/buses"
	"transitcoop/internal/media"

	"go.uber.org/zap"
)

// MaxCards is how many in-service buses the dashboard shows.
const MaxCards = 4

type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Card is one bus as displayed on the dashboard.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Plate    string `json:"plate"`
	ImageURL string `json:"image_url,omitempty"`
	Initials string `json:"initials"`
	Owner    string `json:"owner"`
	HasOwner bool   `json:"has_owner"`
	Driver   string `json:"driver,omitempty"`
	Official string `json:"official,omitempty"`
}

// Summary distinguishes a failed load from a legitimately empty fleet. The
// zero value is the loading state.
type Summary struct {
	State State  `json:"state"`
	Cards []Card `json:"buses"`
	Error string `json:"error,omitempty"`
}

func (s Summary) Empty() bool {
	return s.State == StateLoaded && len(s.Cards) == 0
}

func (s Summary) StateOrLoading() State {
	if s.State == "" {
		return StateLoading
	}
	return s.State
}

type Provider struct {
	store  buses.Store
	images media.Resolver
	logger *zap.SugaredLogger
}

func NewProvider(store buses.Store, images media.Resolver, logger *zap.SugaredLogger) *Provider {
	if images == nil {
		images = media.Passthrough{}
	}
	return &Provider{store: store, images: images, logger: logger}
}

// Load reads up to MaxCards in-service buses.
func (p *Provider) Load(ctx context.Context) Summary {
	list, err := p.store.ListByStatus(ctx, buses.StatusInService, MaxCards)
	if err != nil {
		p.logger.Errorw("failed to load fleet summary", "error", err)
		return Summary{State: StateFailed, Cards: []Card{}, Error: "Could not load buses in service."}
	}

	if len(list) > MaxCards {
		list = list[:MaxCards]
	}

	cards := make([]Card, 0, len(list))
	for i := range list {
		cards = append(cards, p.card(&list[i]))
	}
	return Summary{State: StateLoaded, Cards: cards}
}

func (p *Provider) card(b *buses.Bus) Card {
	c := Card{
		ID:       b.ID.String(),
		Title:    b.Title(),
		Plate:    b.Plate,
		Initials: b.Initials(),
		Owner:    "No owner",
	}
	if b.ImageURL != nil {
		c.ImageURL = p.images.ImageURL(*b.ImageURL)
	}
	if name := b.Owner.FullName(); name != "" {
		c.Owner = name
		c.HasOwner = true
	}
	c.Driver = b.Driver.FullName()
	c.Official = b.Official.FullName()
	return c
}
