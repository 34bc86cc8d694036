package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

const invitationCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const invitationCodeLength = 6

// GroupService holds the business rules for creating and managing groups.
// It only ever sees the authenticated user id; authentication itself is the
// auth service's concern.
type GroupService struct {
	repo ports.GroupRepository
}

func NewGroupService(repo ports.GroupRepository) ports.GroupService {
	return &GroupService{repo: repo}
}

// CreateGroup creates a group with a unique invitation code. The creator
// becomes both admin and first member.
func (s *GroupService) CreateGroup(ctx context.Context, name string, adminID int) (*domain.Group, error) {
	if isBlank(name) {
		return nil, &domain.GroupError{Message: "group name must not be empty"}
	}

	code, err := s.generateUniqueInvitationCode(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.Create(ctx, name, code, adminID)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// JoinGroup adds the user to the group behind the invitation code.
func (s *GroupService) JoinGroup(ctx context.Context, invitationCode string, userID int) (*domain.Group, error) {
	if len(invitationCode) != invitationCodeLength {
		return nil, &domain.GroupError{Message: "invitation code must be exactly 6 characters long"}
	}

	group, err := s.repo.FindByInvitationCode(ctx, invitationCode)
	if err != nil {
		return nil, fmt.Errorf("find group by invitation code: %w", err)
	}
	if group == nil {
		return nil, &domain.GroupError{Message: "invalid invitation code"}
	}

	isMember, err := s.repo.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check group membership: %w", err)
	}
	if isMember {
		return nil, &domain.GroupError{Message: "user is already a member of this group"}
	}

	if err := s.repo.AddMember(ctx, group.ID, userID); err != nil {
		return nil, fmt.Errorf("add group member: %w", err)
	}
	return group, nil
}

// LeaveGroup removes the user from a group. The admin may not leave; they
// delete the group instead so no group is left without an admin.
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID int) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("find group: %w", err)
	}
	if group == nil {
		return &domain.GroupError{Message: "group does not exist"}
	}
	if group.AdminID == userID {
		return &domain.GroupError{Message: "group creator cannot leave the group, delete it instead"}
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("check group membership: %w", err)
	}
	if !isMember {
		return &domain.GroupError{Message: "user is not a member of this group"}
	}

	if err := s.repo.RemoveMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

// DeleteGroup deletes a group and all memberships. Admin only.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID, userID int) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("find group: %w", err)
	}
	if group == nil {
		return &domain.GroupError{Message: "group does not exist"}
	}
	if group.AdminID != userID {
		return &domain.GroupError{Message: "only the group creator can delete the group"}
	}

	if err := s.repo.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// RemoveMember removes a member from a group. Restricted to the admin, who
// cannot remove themselves.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, memberUserID, adminUserID int) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("find group: %w", err)
	}
	if group == nil {
		return &domain.GroupError{Message: "group does not exist"}
	}
	if group.AdminID != adminUserID {
		return &domain.GroupError{Message: "only the group creator can remove members"}
	}
	if memberUserID == adminUserID {
		return &domain.GroupError{Message: "group creator cannot remove themselves, delete the group instead"}
	}

	isMember, err := s.repo.IsMember(ctx, groupID, memberUserID)
	if err != nil {
		return fmt.Errorf("check group membership: %w", err)
	}
	if !isMember {
		return &domain.GroupError{Message: "user is not a member of this group"}
	}

	if err := s.repo.RemoveMember(ctx, groupID, memberUserID); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

// UserGroups returns all groups the user is currently a member of.
func (s *GroupService) UserGroups(ctx context.Context, userID int) ([]*domain.Group, error) {
	groups, err := s.repo.FindGroupsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find groups for user: %w", err)
	}
	return groups, nil
}

func (s *GroupService) generateUniqueInvitationCode(ctx context.Context) (string, error) {
	for attempts := 0; attempts < 100; attempts++ {
		code, err := randomInvitationCode()
		if err != nil {
			return "", err
		}

		existing, err := s.repo.FindByInvitationCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("find group by invitation code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", &domain.GroupError{Message: "could not generate a unique invitation code"}
}

func randomInvitationCode() (string, error) {
	code := make([]byte, invitationCodeLength)
	alphabetSize := big.NewInt(int64(len(invitationCodeChars)))
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate invitation code: %w", err)
		}
		code[i] = invitationCodeChars[n.Int64()]
	}
	return string(code), nil
}
