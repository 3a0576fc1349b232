package store

import (
	"slices"

	"chat-client/internal/models"
)

// Presence holds the roster from the most recent presence snapshot.
type Presence struct {
	users []models.User
}

func NewPresence() *Presence {
	return &Presence{}
}

// ReplaceRoster discards the previous roster. Snapshots are never merged.
func (p *Presence) ReplaceRoster(users []models.User) {
	p.users = slices.Clone(users)
}

func (p *Presence) Roster() []models.User {
	return slices.Clone(p.users)
}

func (p *Presence) Len() int {
	return len(p.users)
}

// FindByUsername returns the first connection of username.
func (p *Presence) FindByUsername(username string) (models.User, bool) {
	for _, u := range p.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}
