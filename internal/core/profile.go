// Package core holds the domain model shared by every layer.
//
// This file defines the persisted account profile. Historical producers of the
// profile entry disagreed on the field name for the holder's name ("name" vs
// "fullName"); FullName is the canonical field and the legacy key is
// normalized away when a stored profile is decoded.
package core

import (
	"encoding/json"
	"errors"
	"strings"
)

// PrivacySettings holds the data-and-privacy toggles from the security page.
type PrivacySettings struct {
	MarketingEmails   bool `json:"marketingEmails"`
	ShareData         bool `json:"shareData"`
	ShowBalanceOnHome bool `json:"showBalanceOnHome"`
}

// Profile is the persisted account profile (the bankUser entry).
type Profile struct {
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	Mobile       string          `json:"mobile"`
	Address      string          `json:"address"`
	Is2FAEnabled bool            `json:"is2FAEnabled"`
	Privacy      PrivacySettings `json:"privacy"`
}

var ErrEmptyFullName = errors.New("empty full name")

// DefaultPrivacySettings mirrors the initial toggle state of the security page.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		MarketingEmails:   false,
		ShareData:         true,
		ShowBalanceOnHome: true,
	}
}

// DefaultProfile builds the fallback profile created when a signed-in user has
// no stored profile yet.
func DefaultProfile(displayName string) Profile {
	if strings.TrimSpace(displayName) == "" {
		displayName = "User"
	}
	return Profile{
		FullName:     displayName,
		Email:        "user@example.com",
		Mobile:       "+91 98123-43210",
		Address:      "123 Address, State, India",
		Is2FAEnabled: false,
		Privacy:      DefaultPrivacySettings(),
	}
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return ErrEmptyFullName
	}
	if !ValidEmail(p.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// UnmarshalJSON decodes a profile, accepting the legacy "name" key as an
// alias for "fullName" when the canonical key is absent.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	aux := struct {
		*alias
		LegacyName string `json:"name"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if strings.TrimSpace(p.FullName) == "" && aux.LegacyName != "" {
		p.FullName = aux.LegacyName
	}
	return nil
}
