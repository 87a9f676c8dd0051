package viewstore

import "github.com/dmitrijs2005/todosync/internal/client/models"

// LoginStore publishes the signed-in user; nil means anonymous.
type LoginStore struct {
	*Store[*models.User]
}

func NewLoginStore() *LoginStore {
	return &LoginStore{Store: NewStore[*models.User](nil)}
}

func (s *LoginStore) SignedIn() bool {
	return s.Get() != nil
}
