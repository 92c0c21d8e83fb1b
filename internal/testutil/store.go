// Package testutil provides an in-memory implementation of every
// repository interface, with the same row semantics as the PostgreSQL
// repositories, for service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	items    map[uuid.UUID]*domain.LineItem
	volumes  map[uuid.UUID]*domain.Volume
	closures map[string]*domain.Closure
	weights  map[string]float64
	users    map[string]*domain.User
	sessions map[string]*domain.Session

	// FailDefineErr, when set, is returned by SetDefinedQuantity for
	// the item FailDefineFor.
	FailDefineFor uuid.UUID
	FailDefineErr error
}

var (
	_ repository.OrderRepo   = (*Store)(nil)
	_ repository.ItemRepo    = (*Store)(nil)
	_ repository.VolumeRepo  = (*Store)(nil)
	_ repository.ClosureRepo = (*Store)(nil)
	_ repository.WeightRepo  = (*Store)(nil)
	_ repository.UserRepo    = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		orders:   make(map[string]*domain.Order),
		items:    make(map[uuid.UUID]*domain.LineItem),
		volumes:  make(map[uuid.UUID]*domain.Volume),
		closures: make(map[string]*domain.Closure),
		weights:  make(map[string]float64),
		users:    make(map[string]*domain.User),
		sessions: make(map[string]*domain.Session),
	}
}

// SeedOrder stores an order and one item per balance, coded C1, C2...
func (s *Store) SeedOrder(key string, deliveryAt time.Time, balances ...int) (*domain.Order, []*domain.LineItem) {
	o := &domain.Order{Key: key, Contract: key, Client: "client " + key, DeliveryAt: deliveryAt}
	for i, b := range balances {
		o.Items = append(o.Items, &domain.LineItem{
			Code:        "C" + string(rune('1'+i)),
			Description: "item",
			Balance:     b,
		})
	}
	if err := s.UpsertOrder(context.Background(), o); err != nil {
		panic(err)
	}
	items, _ := s.ListItems(context.Background(), key)
	return o, items
}

func (s *Store) SetWeight(code string, w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[code] = w
}

func (s *Store) ListPending(_ context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Order
	for _, o := range s.orders {
		if !o.Finalized {
			c := *o
			c.Items = nil
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryAt.After(out[j].DeliveryAt) })
	return out, nil
}

func (s *Store) GetOrderByKey(_ context.Context, key string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *o
	c.Items = nil
	return &c, nil
}

func (s *Store) UpsertOrder(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.orders[o.Key]; ok {
		cur.Client = o.Client
		cur.DeliveryAt = o.DeliveryAt
		o.ID, o.Finalized = cur.ID, cur.Finalized
	} else {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		c := *o
		c.Items = nil
		s.orders[o.Key] = &c
	}
	for _, it := range o.Items {
		if cur := s.itemByCode(o.Key, it.Code); cur != nil {
			cur.Description = it.Description
			it.ID = cur.ID
			continue
		}
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		c := *it
		c.OrderKey = o.Key
		s.items[c.ID] = &c
	}
	return nil
}

func (s *Store) itemByCode(orderKey, code string) *domain.LineItem {
	for _, it := range s.items {
		if it.OrderKey == orderKey && it.Code == code {
			return it
		}
	}
	return nil
}

func (s *Store) ListItems(_ context.Context, orderKey string) ([]*domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.LineItem
	for _, it := range s.items {
		if it.OrderKey == orderKey {
			c := *it
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) GetItem(_ context.Context, id uuid.UUID) (*domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *it
	return &c, nil
}

func (s *Store) SetDefinedQuantity(_ context.Context, ch domain.QuantityChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDefineErr != nil && s.FailDefineFor == ch.ItemID {
		return s.FailDefineErr
	}
	it, ok := s.items[ch.ItemID]
	if !ok {
		return repository.ErrNotFound
	}
	if it.Defined != ch.From || it.Balance+it.Defined < ch.To {
		return domain.ErrItemChanged
	}
	for id, v := range s.volumes {
		if v.ItemID == ch.ItemID {
			delete(s.volumes, id)
		}
	}
	it.Balance = it.Balance + it.Defined - ch.To
	it.Defined = ch.To
	it.Remaining = ch.To
	it.Separated = 0
	it.Selected = ch.To > 0
	return nil
}

func (s *Store) listVolumes(match func(*domain.Volume) bool) []*domain.Volume {
	var out []*domain.Volume
	for _, v := range s.volumes {
		if match(v) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func (s *Store) ListVolumes(_ context.Context, orderKey string) ([]*domain.Volume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listVolumes(func(v *domain.Volume) bool { return v.OrderKey == orderKey }), nil
}

func (s *Store) ListItemVolumes(_ context.Context, itemID uuid.UUID) ([]*domain.Volume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listVolumes(func(v *domain.Volume) bool { return v.ItemID == itemID }), nil
}

func (s *Store) GetVolume(_ context.Context, id uuid.UUID) (*domain.Volume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volumes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (s *Store) VolumeNumberTaken(_ context.Context, itemID uuid.UUID, number int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numberTaken(itemID, number), nil
}

func (s *Store) numberTaken(itemID uuid.UUID, number int) bool {
	for _, v := range s.volumes {
		if v.ItemID == itemID && v.Number == number {
			return true
		}
	}
	return false
}

func (s *Store) CreateVolume(_ context.Context, v *domain.Volume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numberTaken(v.ItemID, v.Number) {
		return domain.ErrVolumeNumberTaken
	}
	it, ok := s.items[v.ItemID]
	if !ok {
		return repository.ErrNotFound
	}
	if it.Remaining < v.Quantity {
		return domain.ErrRemainingExceeded
	}
	c := *v
	s.volumes[v.ID] = &c
	it.Separated += v.Quantity
	it.Remaining -= v.Quantity
	return nil
}

func (s *Store) SetConfirmed(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volumes[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Confirmed = true
	return nil
}

func (s *Store) SetShipped(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volumes[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Shipped = true
	return nil
}

func (s *Store) CloseOrder(_ context.Context, c *domain.Closure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[c.OrderKey]
	if !ok {
		return errors.New("insert closure: order does not exist")
	}
	if _, dup := s.closures[c.OrderKey]; dup || o.Finalized {
		return repository.ErrOrderAlreadyClosed
	}
	cc := *c
	s.closures[c.OrderKey] = &cc
	o.Finalized = true
	return nil
}

func (s *Store) GetClosure(_ context.Context, orderKey string) (*domain.Closure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.closures[orderKey]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cc := *c
	return &cc, nil
}

func (s *Store) UnitWeights(_ context.Context) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrUserExists
	}
	c := *u
	s.users[u.Email] = &c
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *Store) CreateSession(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *sess
	s.sessions[sess.Token] = &c
	return nil
}

func (s *Store) GetSession(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *sess
	return &c, nil
}
