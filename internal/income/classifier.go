package income

import "fjacquet/income-recon/internal/models"

// Channel is the settlement channel a payment method or account belongs to
type Channel string

const (
	ChannelCash  Channel = "cash"
	ChannelBank  Channel = "bank"
	ChannelOther Channel = "other"
)

// Classify maps a payment method or account value to its settlement channel.
// bank, yape and plin are bank-equivalent; anything unknown is ChannelOther.
func Classify(methodOrAccount string) Channel {
	switch methodOrAccount {
	case models.AccountCash:
		return ChannelCash
	case models.AccountBank, models.AccountYape, models.AccountPlin:
		return ChannelBank
	default:
		return ChannelOther
	}
}
