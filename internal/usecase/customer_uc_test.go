package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodveneer/storefront/internal/domain"
)

type chanNotifier struct {
	got chan *domain.ContactRequest
	err error
}

func (n *chanNotifier) NotifyContact(ctx context.Context, c *domain.ContactRequest) error {
	n.got <- c
	return n.err
}

func TestSubmitForcesPendingAndNotifies(t *testing.T) {
	s := newStore()
	n := &chanNotifier{got: make(chan *domain.ContactRequest, 1)}
	uc := &ContactUC{Contacts: s.Contacts(), Notify: n}

	ctx, cancel := context.WithCancel(context.Background())
	c := &domain.ContactRequest{Name: "Hà", Phone: "0901234567", Status: domain.ContactCompleted}
	require.NoError(t, uc.Submit(ctx, c))
	cancel()

	assert.Equal(t, domain.ContactPending, c.Status)
	assert.NotEqual(t, uuid.Nil, c.ID)

	select {
	case lead := <-n.got:
		assert.Equal(t, c.ID, lead.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
	}
}

func TestSubmitIgnoresNotifyFailure(t *testing.T) {
	s := newStore()
	n := &chanNotifier{got: make(chan *domain.ContactRequest, 1), err: assert.AnError}
	uc := &ContactUC{Contacts: s.Contacts(), Notify: n}

	require.NoError(t, uc.Submit(context.Background(), &domain.ContactRequest{Name: "Hà", Phone: "0901"}))
	<-n.got
	list, pg, err := uc.List(context.Background(), domain.ContactFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.EqualValues(t, 1, pg.Total)
}

func TestConvertContactOnce(t *testing.T) {
	s := newStore()
	contacts := &ContactUC{Contacts: s.Contacts()}
	customers := &CustomerUC{Customers: s.Customers()}
	ctx := context.Background()

	email := "lan@example.com"
	msg := "Cần 40m2 vân sồi"
	lead := &domain.ContactRequest{Name: "Lan", Phone: "0987", Email: &email, Message: &msg}
	require.NoError(t, contacts.Create(ctx, lead))

	cust, err := customers.ConvertContact(ctx, domain.ConvertContactInput{ContactID: lead.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lan", cust.Name)
	assert.Equal(t, domain.CustomerIndividual, cust.CustomerType)
	assert.Equal(t, domain.CustomerPotential, cust.Status)
	assert.Equal(t, domain.SourceContact, cust.Source)
	assert.Equal(t, "Chuyển đổi từ liên hệ: Cần 40m2 vân sồi", cust.Notes)
	require.NotNil(t, cust.ContactID)
	assert.Equal(t, lead.ID, *cust.ContactID)

	got, err := contacts.Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactCompleted, got.Status)

	_, err = customers.ConvertContact(ctx, domain.ConvertContactInput{ContactID: lead.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = customers.ConvertContact(ctx, domain.ConvertContactInput{ContactID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerDefaultsAndNegativeSpend(t *testing.T) {
	s := newStore()
	uc := &CustomerUC{Customers: s.Customers()}
	ctx := context.Background()

	c := &domain.Customer{Name: "Công ty Mộc", Phone: "028"}
	require.NoError(t, uc.Create(ctx, c))
	assert.Equal(t, domain.CustomerIndividual, c.CustomerType)
	assert.Equal(t, domain.CustomerPotential, c.Status)
	assert.Equal(t, domain.SourceDirect, c.Source)

	_, err := uc.Update(ctx, c.ID, func(c *domain.Customer) { c.TotalSpent = decimal.NewFromInt(-1) })
	assert.ErrorIs(t, err, domain.ErrValidation)

	other := uuid.New()
	got, err := uc.Update(ctx, c.ID, func(c *domain.Customer) { c.ContactID = &other })
	require.NoError(t, err)
	assert.Nil(t, got.ContactID, "update never links a lead")
}

func TestCustomerEachWalksAllPages(t *testing.T) {
	s := newStore()
	uc := &CustomerUC{Customers: s.Customers()}
	ctx := context.Background()
	for i := 0; i < 130; i++ {
		require.NoError(t, uc.Create(ctx, &domain.Customer{Name: "c", Phone: "1"}))
	}
	n := 0
	require.NoError(t, uc.Each(ctx, domain.CustomerFilter{}, func(domain.Customer) error { n++; return nil }))
	assert.Equal(t, 130, n)
}
