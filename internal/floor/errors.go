package floor

import "errors"

// Validation failures caught before any network call. Each maps to a
// distinct user-facing message at the frontend.
var (
	// ErrIdentityRequired means no operational waiter is selected. Callers
	// must force the identity-selection flow instead of showing a toast.
	ErrIdentityRequired = errors.New("operational waiter not selected")

	// ErrNoTableSelected means submission was attempted without a table.
	ErrNoTableSelected = errors.New("no table selected")

	// ErrEmptyCart means the cart snapshot had no item with quantity > 0.
	ErrEmptyCart = errors.New("cart has no items")

	// ErrIncompleteIdentity rejects a partial id/name pair. The identity is
	// either fully set or fully absent, never halfway.
	ErrIncompleteIdentity = errors.New("identity requires both id and name")
)

// errMessage surfaces the server-provided message when the error carries
// one, else the generic fallback. Transport errors implement UserMessage.
func errMessage(err error, fallback string) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
