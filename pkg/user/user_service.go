package user

import (
	"context"

	"Potluck-Backend/domain"
)

type (
	UserService interface {
		SyncProfile(ctx context.Context, identity domain.Identity) (domain.UserProfileResponse, error)
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{
		userRepository: userRepository,
	}
}

// SyncProfile stores the identity claims under users/{uid} and reports how
// many events the user hosts and has joined.
func (s *userService) SyncProfile(ctx context.Context, identity domain.Identity) (domain.UserProfileResponse, error) {
	if identity.UID == "" {
		return domain.UserProfileResponse{}, domain.ErrUserNotAllowed
	}
	if err := s.userRepository.UpsertProfile(ctx, identity); err != nil {
		return domain.UserProfileResponse{}, err
	}

	hosted, err := s.userRepository.GetHostedEventIDs(ctx, identity.UID)
	if err != nil {
		return domain.UserProfileResponse{}, err
	}
	joined, err := s.userRepository.GetJoinedEventIDs(ctx, identity.UID)
	if err != nil {
		return domain.UserProfileResponse{}, err
	}

	return domain.UserProfileResponse{
		UID:          identity.UID,
		Name:         identity.DisplayName,
		Email:        identity.Email,
		PhotoURL:     identity.PhotoURL,
		HostedEvents: len(hosted),
		JoinedEvents: len(joined),
	}, nil
}
