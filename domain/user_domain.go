package domain

import "errors"

var (
	MessageSuccessGetProfile = "profile retrieved successfully"
	MessageFailedGetProfile  = "failed to retrieve profile"

	ErrProfileNotFound = errors.New("profile not found")
)

type (
	// Identity is what the identity provider asserts about the caller.
	Identity struct {
		UID         string
		DisplayName string
		Email       string
		PhotoURL    string
	}

	UserProfileResponse struct {
		UID          string `json:"uid"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		PhotoURL     string `json:"photo_url,omitempty"`
		HostedEvents int    `json:"hosted_events"`
		JoinedEvents int    `json:"joined_events"`
	}
)
