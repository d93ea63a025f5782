package shared

import "github.com/google/uuid"

// Identifier prefixes per entity kind.
const (
	PrefixCustomer     = "c"
	PrefixJob          = "j"
	PrefixQuote        = "q"
	PrefixRequest      = "r"
	PrefixLineItem     = "li"
	PrefixInvoice      = "inv"
	PrefixNotification = "n"
)

// NewID returns a prefixed, time-ordered identifier such as "q_0190f7c4-...".
// UUIDv7 keeps ids unique even when several are minted within the same millisecond.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if prefix == "" {
		return id.String()
	}
	return prefix + "_" + id.String()
}
