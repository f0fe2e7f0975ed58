package userstore

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

var ErrInvalidProfileJSON = errors.New("user profile is not valid JSON")

// Profile is the free-form part of a user record, stored as a JSONB column.
type Profile struct {
	Nickname string `json:"nickname"`
	Locale   string `json:"locale"`
}

// User is one row of the users table.
type User struct {
	ID      int64
	Account string
	Token   string
	Profile Profile
}

// MapUser converts one cursor row into a User, decoding the profile column.
func MapUser(cursor driver.Cursor, _ int) (User, error) {
	id, err := cursor.Int64(colID)
	if err != nil {
		return User{}, err
	}

	account, err := cursor.String(colAccount)
	if err != nil {
		return User{}, err
	}

	token, err := cursor.String(colToken)
	if err != nil {
		return User{}, err
	}

	profileJSON, err := cursor.Bytes(colProfile)
	if err != nil {
		return User{}, err
	}

	var profile Profile
	if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(profileJSON, &profile); unmarshalErr != nil {
		return User{}, errors.Join(ErrInvalidProfileJSON, unmarshalErr)
	}

	return User{ID: id, Account: account, Token: token, Profile: profile}, nil
}
