package test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// OrderStore is an in-memory order repository that prices items from a
// fixed catalog and enforces the store-side status rules.
type OrderStore struct {
	Prices    map[string]decimal.Decimal
	CreateErr error
	FindErr   error
	WriteErr  error

	// Writes counts committed status changes.
	Writes atomic.Int32

	LastFilter model.OrderFilter
	LastSearch model.OrderSearch

	mu     sync.Mutex
	orders map[int64]*model.Order
	next   int64
}

// NewOrderStore creates a store with the provided catalog prices.
func NewOrderStore(prices map[string]string) *OrderStore {
	s := &OrderStore{Prices: make(map[string]decimal.Decimal), orders: make(map[int64]*model.Order)}
	for code, price := range prices {
		s.Prices[code] = decimal.RequireFromString(price)
	}
	return s
}

// Put stores an order as is.
func (s *OrderStore) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[int64]*model.Order)
	}
	s.orders[order.Sheet] = &order
	if order.Sheet > s.next {
		s.next = order.Sheet
	}
}

// Status returns the current status of sheet.
func (s *OrderStore) Status(sheet int64) model.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[sheet]; ok {
		return o.Status
	}
	return ""
}

// Len returns the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderStore) Create(ctx context.Context, client string, items []model.LineItem, discount decimal.Decimal) (*model.Order, string, error) {
	if s.CreateErr != nil {
		return nil, "", s.CreateErr
	}
	subtotal := decimal.Zero
	for _, item := range items {
		price, ok := s.Prices[item.Product]
		if !ok {
			return nil, "", &domainErrors.DataAccessError{
				Routine: "register_order",
				Message: fmt.Sprintf("product %s does not exist", item.Product),
			}
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	advisory := ""
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
		advisory = "discount exceeds order subtotal, total set to zero"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[int64]*model.Order)
	}
	s.next++
	order := &model.Order{
		Sheet:    s.next,
		Client:   client,
		Items:    append([]model.LineItem(nil), items...),
		Discount: discount,
		Total:    total,
		Status:   model.OrderStatusCreated,
	}
	s.orders[order.Sheet] = order
	copied := *order
	return &copied, advisory, nil
}

func (s *OrderStore) Find(ctx context.Context, sheet int64) (*model.Order, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[sheet]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	return s.write("update_order_status", sheet, status)
}

func (s *OrderStore) Cancel(ctx context.Context, sheet int64) (model.MutationResult, error) {
	return s.write("cancel_order", sheet, model.OrderStatusCancelled)
}

func (s *OrderStore) write(routine string, sheet int64, status model.OrderStatus) (model.MutationResult, error) {
	if s.WriteErr != nil {
		return model.MutationResult{}, s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[sheet]
	if !ok {
		return model.MutationResult{}, &domainErrors.DataAccessError{Routine: routine, Message: fmt.Sprintf("order %d does not exist", sheet)}
	}
	if o.Status == status {
		return model.MutationResult{Advisory: fmt.Sprintf("order %d is already %s", sheet, status)}, nil
	}
	if o.Status != model.OrderStatusCreated {
		return model.MutationResult{}, &domainErrors.DataAccessError{Routine: routine, Message: fmt.Sprintf("order %d is %s", sheet, o.Status)}
	}
	o.Status = status
	s.Writes.Add(1)
	return model.MutationResult{}, nil
}

func (s *OrderStore) Get(ctx context.Context, sheet int64) (model.Row, error) {
	o, err := s.Find(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return orderRow(o), nil
}

func (s *OrderStore) Details(ctx context.Context, sheet int64) ([]model.Row, error) {
	o, err := s.Find(ctx, sheet)
	if err != nil {
		return nil, err
	}
	rows := make([]model.Row, 0, len(o.Items))
	for i, item := range o.Items {
		rows = append(rows, model.Row{
			"position": int64(i + 1),
			"product":  item.Product,
			"quantity": int64(item.Quantity),
		})
	}
	return rows, nil
}

func (s *OrderStore) ListByClient(ctx context.Context, client string) ([]model.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []model.Row
	for _, o := range s.orders {
		if o.Client == client {
			rows = append(rows, orderRow(o))
		}
	}
	return rows, nil
}

func (s *OrderStore) Filter(ctx context.Context, filter model.OrderFilter) ([]model.Row, error) {
	s.LastFilter = filter
	return []model.Row{}, nil
}

func (s *OrderStore) Search(ctx context.Context, search model.OrderSearch) ([]model.Row, error) {
	s.LastSearch = search
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []model.Row
	for _, o := range s.orders {
		if strings.Contains(o.Client, search.Term) {
			rows = append(rows, orderRow(o))
		}
	}
	return rows, nil
}

func orderRow(o *model.Order) model.Row {
	return model.Row{
		"sheet":    o.Sheet,
		"client":   o.Client,
		"discount": o.Discount,
		"total":    o.Total,
		"status":   string(o.Status),
	}
}

// ClientRepositoryStub stores clients in-memory for tests.
type ClientRepositoryStub struct {
	Clients map[string]model.Client
	Err     error

	mu sync.Mutex
}

// NewClientRepositoryStub constructs stub repository with initialized map.
func NewClientRepositoryStub() *ClientRepositoryStub {
	return &ClientRepositoryStub{Clients: make(map[string]model.Client)}
}

// Register mirrors the store procedure: duplicates yield an advisory.
func (s *ClientRepositoryStub) Register(ctx context.Context, c model.Client) (model.MutationResult, error) {
	if s.Err != nil {
		return model.MutationResult{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Clients == nil {
		s.Clients = make(map[string]model.Client)
	}
	for _, existing := range s.Clients {
		if existing.Username == c.Username || existing.Email == c.Email {
			return model.MutationResult{Advisory: fmt.Sprintf("client %s already registered", c.Username)}, nil
		}
	}
	s.Clients[c.Username] = c
	return model.MutationResult{}, nil
}

func (s *ClientRepositoryStub) Get(ctx context.Context, username string) (model.Row, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Clients[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return model.Row{"username": c.Username, "name": c.Name, "email": c.Email}, nil
}

func (s *ClientRepositoryStub) PasswordHash(ctx context.Context, username string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Clients[username]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	return c.PasswordHash, nil
}

// ProductRepositoryStub records registered products.
type ProductRepositoryStub struct {
	RegisterFn func(context.Context, model.Product) (model.MutationResult, error)
	Registered []model.Product
	Rows       map[string]model.Row
}

func (s *ProductRepositoryStub) Register(ctx context.Context, p model.Product) (model.MutationResult, error) {
	s.Registered = append(s.Registered, p)
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, p)
	}
	return model.MutationResult{}, nil
}

func (s *ProductRepositoryStub) Get(ctx context.Context, code string) (model.Row, error) {
	if row, ok := s.Rows[code]; ok {
		return row, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StaffRepositoryStub maps usernames to stored hashes.
type StaffRepositoryStub struct {
	Hashes map[string]string
	Err    error
}

func (s StaffRepositoryStub) PasswordHash(ctx context.Context, username string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	hash, ok := s.Hashes[username]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	return hash, nil
}

var (
	_ repository.OrderRepository   = (*OrderStore)(nil)
	_ repository.ClientRepository  = (*ClientRepositoryStub)(nil)
	_ repository.ProductRepository = (*ProductRepositoryStub)(nil)
	_ repository.StaffRepository   = StaffRepositoryStub{}
)
