package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Truthy is a JSON flag that different backend versions serialize as a bool
// (true), a number (1), or a string ("1"/"true"). Absent and null decode as
// false.
type Truthy bool

// UnmarshalJSON accepts bool, numeric, and string encodings of a flag.
func (t *Truthy) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*t = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Truthy(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Truthy(n != 0)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Truthy(s == "1" || strings.EqualFold(s, "true"))
		return nil
	}

	return fmt.Errorf("cannot decode %s as flag", raw)
}

// User is the authenticated account snapshot returned by the board's /me and
// /login endpoints.
//
// The backend has shipped several shapes for the admin indicator over time:
// a role string, an is_admin flag, and an admin flag. All three are decoded
// and folded into the single [User.IsAdmin] predicate; do not collapse them
// into one field.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	AdminFlag Truthy `json:"is_admin,omitempty"`
	AdminAlt  Truthy `json:"admin,omitempty"`
}

// IsAdmin reports whether any of the admin-indicating fields is set.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == "admin" || bool(u.AdminFlag) || bool(u.AdminAlt)
}
