package mailer

import (
	"context"

	"github.com/unimarket/catalog-service/internal/catalog/domain"
)

// Sender is the subset of Mailer the notifier needs.
type Sender interface {
	SendListingVerifiedEmail(toEmail, listingTitle string) error
}

// Notifier adapts Mailer to the verification workflow. The catalog only
// knows opaque owner ids, so verified-listing notifications go to a
// configured operations mailbox.
type Notifier struct {
	mailer    Sender
	recipient string
}

func NewNotifier(m Sender, recipient string) *Notifier {
	return &Notifier{mailer: m, recipient: recipient}
}

func (n *Notifier) ListingVerified(ctx context.Context, listing *domain.Listing) error {
	return n.mailer.SendListingVerifiedEmail(n.recipient, listing.Title)
}
