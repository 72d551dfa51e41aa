package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/internal/events"
	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
	"github.com/khushthecoder/Expense-Splitter/pkg/api/apiconnect"
)

// Ensure GroupService implements the Connect handler interface
var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	manager   *ledger.Manager
	publisher events.Publisher
}

// NewGroupService creates a new GroupService. A nil publisher discards events.
func NewGroupService(manager *ledger.Manager, publisher events.Publisher) *GroupService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &GroupService{manager: manager, publisher: publisher}
}

// CreateUser registers a new user.
func (s *GroupService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	slog.InfoContext(ctx, "CreateUser request received", "name", req.Msg.Name)

	user, err := s.manager.CreateUser(ctx, ledger.UserInput{
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
		Phone: req.Msg.Phone,
	})
	if err != nil {
		return nil, fail(ctx, "CreateUser", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", user.ID)
	publish(ctx, s.publisher, events.New(events.UserCreated, nil, user.ID))

	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// GetUser retrieves a user by ID.
func (s *GroupService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	user, err := s.manager.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "GetUser", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

// CreateGroup creates a group. The creator is always a member; the extra
// members are written in the same transaction. Events go out only once the
// whole group is stored.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.InfoContext(ctx, "CreateGroup request received",
		"name", req.Msg.Name,
		"created_by", req.Msg.CreatedBy,
		"members_count", len(req.Msg.MemberIDs),
	)

	group, err := s.manager.CreateGroup(ctx, ledger.GroupInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		CreatedBy:   req.Msg.CreatedBy,
		MemberIDs:   req.Msg.MemberIDs,
	})
	if err != nil {
		return nil, fail(ctx, "CreateGroup", err, "created_by", req.Msg.CreatedBy)
	}

	memberIDs, err := s.manager.Memberships().Members(ctx, group.ID)
	if err != nil {
		return nil, fail(ctx, "CreateGroup", err, "group_id", group.ID)
	}

	publish(ctx, s.publisher, events.New(events.GroupCreated, &group.ID, group.ID))
	for _, id := range memberIDs {
		if id != group.CreatedBy {
			publish(ctx, s.publisher, events.New(events.MemberAdded, &group.ID, id))
		}
	}

	slog.InfoContext(ctx, "Group created", "group_id", group.ID, "members_count", len(memberIDs))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, memberIDs)}), nil
}

// GetGroup retrieves a group with its current members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.InfoContext(ctx, "GetGroup request received", "group_id", req.Msg.GroupID)

	group, memberIDs, err := s.groupWithMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "GetGroup", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group, memberIDs)}), nil
}

// ListUserGroups lists the groups a user belongs to, newest first.
func (s *GroupService) ListUserGroups(ctx context.Context, req *connect.Request[api.ListUserGroupsRequest]) (*connect.Response[api.ListUserGroupsResponse], error) {
	slog.InfoContext(ctx, "ListUserGroups request received", "user_id", req.Msg.UserID)

	groups, err := s.manager.ListUserGroups(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "ListUserGroups", err, "user_id", req.Msg.UserID)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		memberIDs, err := s.manager.Memberships().Members(ctx, g.ID)
		if err != nil {
			return nil, fail(ctx, "ListUserGroups", err, "group_id", g.ID)
		}
		out[i] = toAPIGroup(g, memberIDs)
	}

	slog.InfoContext(ctx, "ListUserGroups successful", "count", len(out))

	return connect.NewResponse(&api.ListUserGroupsResponse{Groups: out}), nil
}

// AddMember adds a user to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.InfoContext(ctx, "AddMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	m, err := s.manager.Memberships().AddMember(ctx, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "AddMember", err, "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)
	}
	publish(ctx, s.publisher, events.New(events.MemberAdded, &m.GroupID, m.UserID))

	return connect.NewResponse(&api.AddMemberResponse{
		Membership: &api.Membership{GroupID: m.GroupID, UserID: m.UserID, JoinedAt: m.JoinedAt},
	}), nil
}

// RemoveMember removes a user from a group. Past entries are unaffected.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.InfoContext(ctx, "RemoveMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	groupID := req.Msg.GroupID
	if err := s.manager.Memberships().RemoveMember(ctx, groupID, req.Msg.UserID); err != nil {
		return nil, fail(ctx, "RemoveMember", err, "group_id", groupID, "user_id", req.Msg.UserID)
	}
	publish(ctx, s.publisher, events.New(events.MemberRemoved, &groupID, req.Msg.UserID))

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// ListMembers lists the users in a group, ordered by ID.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	memberIDs, err := s.manager.Memberships().Members(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "ListMembers", err, "group_id", req.Msg.GroupID)
	}
	users, err := s.manager.Users(ctx, memberIDs)
	if err != nil {
		return nil, fail(ctx, "ListMembers", err, "group_id", req.Msg.GroupID)
	}

	members := make([]*api.User, 0, len(memberIDs))
	for _, id := range memberIDs {
		if u, ok := users[id]; ok {
			members = append(members, toAPIUser(u))
		}
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: members}), nil
}

func (s *GroupService) groupWithMembers(ctx context.Context, groupID int64) (*models.Group, []int64, error) {
	group, err := s.manager.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	memberIDs, err := s.manager.Memberships().Members(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, memberIDs, nil
}

// publish sends an event after a committed mutation. Failures are logged
// and never reach the caller.
func publish(ctx context.Context, p events.Publisher, event events.Event) {
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event",
			"type", event.Type,
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}
