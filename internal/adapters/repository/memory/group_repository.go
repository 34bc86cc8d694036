package memory

import (
	"context"
	"sync"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

type membership struct {
	groupID int
	userID  int
}

type GroupRepository struct {
	mu      sync.Mutex
	nextID  int
	groups  map[int]domain.Group
	members map[membership]bool
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		nextID:  1,
		groups:  map[int]domain.Group{},
		members: map[membership]bool{},
	}
}

var _ ports.GroupRepository = (*GroupRepository)(nil)

func (r *GroupRepository) Create(_ context.Context, name, invitationCode string, adminID int) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group := domain.Group{
		ID:             r.nextID,
		Name:           name,
		InvitationCode: invitationCode,
		AdminID:        adminID,
	}
	r.nextID++
	r.groups[group.ID] = group
	r.members[membership{group.ID, adminID}] = true

	g := group
	return &g, nil
}

func (r *GroupRepository) FindByID(_ context.Context, id int) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	g := group
	return &g, nil
}

func (r *GroupRepository) FindByInvitationCode(_ context.Context, code string) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range r.groups {
		if group.InvitationCode == code {
			g := group
			return &g, nil
		}
	}
	return nil, nil
}

func (r *GroupRepository) FindGroupsByUserID(_ context.Context, userID int) ([]*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups := []*domain.Group{}
	for id, group := range r.groups {
		if r.members[membership{id, userID}] {
			g := group
			groups = append(groups, &g)
		}
	}
	return groups, nil
}

func (r *GroupRepository) IsMember(_ context.Context, groupID, userID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[membership{groupID, userID}], nil
}

func (r *GroupRepository) AddMember(_ context.Context, groupID, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[membership{groupID, userID}] = true
	return nil
}

func (r *GroupRepository) RemoveMember(_ context.Context, groupID, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, membership{groupID, userID})
	return nil
}

func (r *GroupRepository) Delete(_ context.Context, groupID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.groups, groupID)
	for m := range r.members {
		if m.groupID == groupID {
			delete(r.members, m)
		}
	}
	return nil
}
