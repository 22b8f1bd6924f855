package access

import (
	"errors"
	"strings"
)

// ErrUnknownUser is returned when credential lookup misses. No session
// state is created and no part of the pipeline runs for the request.
var ErrUnknownUser = errors.New("unknown user or wrong password")

type credential struct {
	username string
	password string
	scope    Scope
}

// The council's fixed user table.
var credentials = []credential{
	{"aharony", "1234", AdminScope{}},
	{"tamir", "1234", AdminScope{}},
	{"erik", "1234", WingScope{Wing: `שפ"ה`}},
	{"lior", "1234", WingScope{Wing: "הנדסה"}},
	{"smadar", "1234", WingScope{Wing: "חינוך"}},
	{"or", "1234", WingScope{Wing: "שירות לתושב ודוברות"}},
	{"adi", "1234", WingScope{Wing: "מרכז קהילתי"}},
	{"hofit", "1234", WingScope{Wing: "הון אנושי"}},
	{"tavroa", "1234", DeptScope{Dept: "תברואה"}},
	{"ginon", "1234", DeptScope{Dept: "גינון"}},
}

// Authenticate resolves a submitted username/password pair against the
// fixed table. Usernames compare case-insensitively.
func Authenticate(username, password string) (User, error) {
	for _, c := range credentials {
		if strings.EqualFold(c.username, username) && c.password == password {
			return User{Username: c.username, Scope: c.scope}, nil
		}
	}
	return User{}, ErrUnknownUser
}
