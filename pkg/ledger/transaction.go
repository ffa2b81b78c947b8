package ledger

import (
	"fmt"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
	"github.com/pwinckles/matrix-firefly-bot/pkg/firefly"
)

// GeneralExpense is the destination label for all withdrawals. Only
// single-account expenses are modeled, not transfers or deposits.
const GeneralExpense = "General expense"

// NewWithdrawal builds the transaction record for an add request. The
// sender is always appended to the tags as an audit marker, even when
// it is already present. The message's server timestamp is converted
// to local time before transmission.
func NewWithdrawal(req command.AddRequest, sender string, ts time.Time, sourceID int64, destination string) firefly.Transaction {
	tags := make([]string, 0, len(req.Tags)+1)
	tags = append(tags, req.Tags...)
	tags = append(tags, sender)

	return firefly.Transaction{
		Type:            "withdrawal",
		Date:            ts.Local(),
		Amount:          firefly.NewAmount(req.Amount),
		Description:     fmt.Sprintf("%s by %s", req.Category, sender),
		CategoryName:    req.Category,
		SourceID:        sourceID,
		DestinationName: destination,
		Tags:            tags,
		Notes:           req.Note,
	}
}
