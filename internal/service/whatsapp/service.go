package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger/format"
	client "github.com/Arnold-CK/Anjo/pkg/clients/whatsapp"
)

// ErrNoRecipient is returned when no digest recipient is configured.
var ErrNoRecipient = errors.New("digest recipient not configured")

// DigestService sends the weekly ledger digest over WhatsApp.
type DigestService struct {
	sender    client.Sender
	recipient string
	logger    *zap.Logger
}

// NewDigestService wires a digest sender for one recipient.
func NewDigestService(sender client.Sender, recipient string, logger *zap.Logger) *DigestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DigestService{
		sender:    sender,
		recipient: recipient,
		logger:    logger,
	}
}

// SendDigest renders and delivers the weekly totals.
func (s *DigestService) SendDigest(ctx context.Context, totals models.WeeklyTotals) error {
	if s.recipient == "" {
		return ErrNoRecipient
	}

	id, err := s.sender.SendText(ctx, s.recipient, RenderDigest(totals))
	if err != nil {
		return fmt.Errorf("send weekly digest: %w", err)
	}

	s.logger.Info("weekly digest sent", zap.String("message_id", id), zap.Time("from", totals.From))
	return nil
}

// RenderDigest formats the weekly totals as a WhatsApp text message.
func RenderDigest(t models.WeeklyTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Anjo Farms weekly summary*\n%s - %s\n\n", format.Date(t.From), format.Date(t.To))
	fmt.Fprintf(&b, "Costs: %s ugx (%s)\n", format.Money(t.Costs), format.Plural(t.CostEntries, "line item"))
	fmt.Fprintf(&b, "Sales: %s kg for %s ugx\n", format.Quantity(t.SalesQuantity), format.Money(t.SalesRevenue))
	fmt.Fprintf(&b, "Harvested: %s kg (%s)\n", format.Quantity(t.Harvested), format.Plural(t.HarvestEvents, "harvest"))
	fmt.Fprintf(&b, "Deposits: %s ugx\n", format.Money(t.Deposits))
	fmt.Fprintf(&b, "Withdrawals: %s ugx\n", format.Money(t.Withdrawals))
	fmt.Fprintf(&b, "Net cash: %s ugx", format.Money(t.NetCash()))
	return b.String()
}
