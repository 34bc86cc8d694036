package ports

import (
	"context"

	"github.com/crew-app/crew/internal/core/domain"
)

// GroupRepository stores groups and their memberships. Create also adds the
// admin as the first member. Delete cascades to memberships.
type GroupRepository interface {
	Create(ctx context.Context, name, invitationCode string, adminID int) (*domain.Group, error)
	FindByID(ctx context.Context, id int) (*domain.Group, error)
	FindByInvitationCode(ctx context.Context, code string) (*domain.Group, error)
	FindGroupsByUserID(ctx context.Context, userID int) ([]*domain.Group, error)
	IsMember(ctx context.Context, groupID, userID int) (bool, error)
	AddMember(ctx context.Context, groupID, userID int) error
	RemoveMember(ctx context.Context, groupID, userID int) error
	Delete(ctx context.Context, groupID int) error
}

type GroupService interface {
	CreateGroup(ctx context.Context, name string, adminID int) (*domain.Group, error)
	JoinGroup(ctx context.Context, invitationCode string, userID int) (*domain.Group, error)
	LeaveGroup(ctx context.Context, groupID, userID int) error
	DeleteGroup(ctx context.Context, groupID, userID int) error
	RemoveMember(ctx context.Context, groupID, memberUserID, adminUserID int) error
	UserGroups(ctx context.Context, userID int) ([]*domain.Group, error)
}
