package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

type MockSender struct {
	WasCalled bool
	To        string
	Title     string
	Err       error
}

func (m *MockSender) SendListingVerifiedEmail(toEmail, listingTitle string) error {
	m.WasCalled = true
	m.To = toEmail
	m.Title = listingTitle
	return m.Err
}

func TestNotifier_SendsToConfiguredRecipient(t *testing.T) {
	mock := &MockSender{}
	n := NewNotifier(mock, "ops@example.com")

	err := n.ListingVerified(context.Background(), &domain.Listing{Title: "Dublin Hotel"})

	assert.NoError(t, err)
	assert.True(t, mock.WasCalled)
	assert.Equal(t, "ops@example.com", mock.To)
	assert.Equal(t, "Dublin Hotel", mock.Title)
}

func TestNotifier_PropagatesSendError(t *testing.T) {
	mock := &MockSender{Err: errors.New("smtp unreachable")}
	n := NewNotifier(mock, "ops@example.com")

	err := n.ListingVerified(context.Background(), &domain.Listing{Title: "Dublin Hotel"})
	assert.Error(t, err)
}
