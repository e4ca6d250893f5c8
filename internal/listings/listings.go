// Package listings holds the property listings and users the TUI browses,
// persisted in a single TOML data file.
package listings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/treykane/listings/internal/logging"
)

var log = logging.New("listings")

var (
	// ErrNotAdmin is returned when a non-admin tries to act as another user.
	ErrNotAdmin = errors.New("only admins can act as another user")
	// ErrUnknownUser is returned for an email with no matching user.
	ErrUnknownUser = errors.New("unknown user")
	// ErrSelf is returned when a user tries to act as themselves.
	ErrSelf = errors.New("cannot act as yourself")
	// ErrLoggedOut is returned by session operations after LogOut.
	ErrLoggedOut = errors.New("session is logged out")
)

// Status is a listing's market state.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusOffMarket Status = "off-market"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusActive, StatusPending, StatusSold, StatusOffMarket}

// Listing is one property.
type Listing struct {
	ID          string  `toml:"id"`
	Title       string  `toml:"title"`
	Address     string  `toml:"address"`
	City        string  `toml:"city"`
	Price       float64 `toml:"price"`
	Bedrooms    int     `toml:"bedrooms"`
	Status      Status  `toml:"status"`
	Owner       string  `toml:"owner"`
	Team        string  `toml:"team"`
	Description string  `toml:"description"`
}

// PriceLabel formats the price for display, e.g. "$1,250,000".
func (l Listing) PriceLabel() string {
	return FormatPrice(l.Price)
}

// FormatPrice renders a dollar amount rounded to whole dollars with
// thousands separators.
func FormatPrice(amount float64) string {
	whole := fmt.Sprintf("%.0f", amount)
	sign := ""
	if strings.HasPrefix(whole, "-") {
		sign, whole = "-", whole[1:]
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}

// User is an account that owns listings.
type User struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
	Team  string `toml:"team"`
	Admin bool   `toml:"admin"`
}

// Label returns "Name <email>", or just the email when the name is empty.
func (u User) Label() string {
	if strings.TrimSpace(u.Name) == "" {
		return u.Email
	}
	return u.Name + " <" + u.Email + ">"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
