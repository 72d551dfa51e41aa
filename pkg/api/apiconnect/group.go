package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = "splitter.v1.GroupService"

// Procedure paths, as used in Spec().Procedure and URL routing.
const (
	GroupServiceCreateUserProcedure         = "/splitter.v1.GroupService/CreateUser"
	GroupServiceGetUserProcedure            = "/splitter.v1.GroupService/GetUser"
	GroupServiceCreateGroupProcedure        = "/splitter.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure           = "/splitter.v1.GroupService/GetGroup"
	GroupServiceListUserGroupsProcedure     = "/splitter.v1.GroupService/ListUserGroups"
	GroupServiceAddMemberProcedure          = "/splitter.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure       = "/splitter.v1.GroupService/RemoveMember"
	GroupServiceListMembersProcedure        = "/splitter.v1.GroupService/ListMembers"
	GroupServiceListUsersProcedure          = "/splitter.v1.GroupService/ListUsers"
	GroupServiceUpdateUserProcedure         = "/splitter.v1.GroupService/UpdateUser"
	GroupServiceGetUserSettingsProcedure    = "/splitter.v1.GroupService/GetUserSettings"
	GroupServiceUpdateUserSettingsProcedure = "/splitter.v1.GroupService/UpdateUserSettings"
	GroupServiceAddFriendProcedure          = "/splitter.v1.GroupService/AddFriend"
	GroupServiceRemoveFriendProcedure       = "/splitter.v1.GroupService/RemoveFriend"
	GroupServiceListFriendsProcedure        = "/splitter.v1.GroupService/ListFriends"
)

// GroupServiceHandler is implemented by the server side of GroupService.
// GroupService manages users, their friends and settings, groups and
// memberships.
type GroupServiceHandler interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListUserGroups(context.Context, *connect.Request[api.ListUserGroupsRequest]) (*connect.Response[api.ListUserGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetUserSettings(context.Context, *connect.Request[api.GetUserSettingsRequest]) (*connect.Response[api.GetUserSettingsResponse], error)
	UpdateUserSettings(context.Context, *connect.Request[api.UpdateUserSettingsRequest]) (*connect.Response[api.UpdateUserSettingsResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler serving every GroupService procedure.
// It returns the path prefix to mount the handler on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	createUserHandler := connect.NewUnaryHandler(GroupServiceCreateUserProcedure, svc.CreateUser, opts...)
	getUserHandler := connect.NewUnaryHandler(GroupServiceGetUserProcedure, svc.GetUser, opts...)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listUserGroupsHandler := connect.NewUnaryHandler(GroupServiceListUserGroupsProcedure, svc.ListUserGroups, opts...)
	addMemberHandler := connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...)
	removeMemberHandler := connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...)
	listMembersHandler := connect.NewUnaryHandler(GroupServiceListMembersProcedure, svc.ListMembers, opts...)
	listUsersHandler := connect.NewUnaryHandler(GroupServiceListUsersProcedure, svc.ListUsers, opts...)
	updateUserHandler := connect.NewUnaryHandler(GroupServiceUpdateUserProcedure, svc.UpdateUser, opts...)
	getUserSettingsHandler := connect.NewUnaryHandler(GroupServiceGetUserSettingsProcedure, svc.GetUserSettings, opts...)
	updateUserSettingsHandler := connect.NewUnaryHandler(GroupServiceUpdateUserSettingsProcedure, svc.UpdateUserSettings, opts...)
	addFriendHandler := connect.NewUnaryHandler(GroupServiceAddFriendProcedure, svc.AddFriend, opts...)
	removeFriendHandler := connect.NewUnaryHandler(GroupServiceRemoveFriendProcedure, svc.RemoveFriend, opts...)
	listFriendsHandler := connect.NewUnaryHandler(GroupServiceListFriendsProcedure, svc.ListFriends, opts...)

	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateUserProcedure:
			createUserHandler.ServeHTTP(w, r)
		case GroupServiceGetUserProcedure:
			getUserHandler.ServeHTTP(w, r)
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceListUserGroupsProcedure:
			listUserGroupsHandler.ServeHTTP(w, r)
		case GroupServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case GroupServiceRemoveMemberProcedure:
			removeMemberHandler.ServeHTTP(w, r)
		case GroupServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case GroupServiceListUsersProcedure:
			listUsersHandler.ServeHTTP(w, r)
		case GroupServiceUpdateUserProcedure:
			updateUserHandler.ServeHTTP(w, r)
		case GroupServiceGetUserSettingsProcedure:
			getUserSettingsHandler.ServeHTTP(w, r)
		case GroupServiceUpdateUserSettingsProcedure:
			updateUserSettingsHandler.ServeHTTP(w, r)
		case GroupServiceAddFriendProcedure:
			addFriendHandler.ServeHTTP(w, r)
		case GroupServiceRemoveFriendProcedure:
			removeFriendHandler.ServeHTTP(w, r)
		case GroupServiceListFriendsProcedure:
			listFriendsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListUserGroups(context.Context, *connect.Request[api.ListUserGroupsRequest]) (*connect.Response[api.ListUserGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error)
	GetUserSettings(context.Context, *connect.Request[api.GetUserSettingsRequest]) (*connect.Response[api.GetUserSettingsResponse], error)
	UpdateUserSettings(context.Context, *connect.Request[api.UpdateUserSettingsRequest]) (*connect.Response[api.UpdateUserSettingsResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	RemoveFriend(context.Context, *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

type groupServiceClient struct {
	createUser         *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	getUser            *connect.Client[api.GetUserRequest, api.GetUserResponse]
	createGroup        *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listUserGroups     *connect.Client[api.ListUserGroupsRequest, api.ListUserGroupsResponse]
	addMember          *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember       *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	listMembers        *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	listUsers          *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	updateUser         *connect.Client[api.UpdateUserRequest, api.UpdateUserResponse]
	getUserSettings    *connect.Client[api.GetUserSettingsRequest, api.GetUserSettingsResponse]
	updateUserSettings *connect.Client[api.UpdateUserSettingsRequest, api.UpdateUserSettingsResponse]
	addFriend          *connect.Client[api.AddFriendRequest, api.AddFriendResponse]
	removeFriend       *connect.Client[api.RemoveFriendRequest, api.RemoveFriendResponse]
	listFriends        *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
}

// NewGroupServiceClient creates a client for the GroupService served at baseURL
// (e.g., http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &groupServiceClient{
		createUser:         connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](httpClient, baseURL+GroupServiceCreateUserProcedure, opts...),
		getUser:            connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+GroupServiceGetUserProcedure, opts...),
		createGroup:        connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:           connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listUserGroups:     connect.NewClient[api.ListUserGroupsRequest, api.ListUserGroupsResponse](httpClient, baseURL+GroupServiceListUserGroupsProcedure, opts...),
		addMember:          connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:       connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		listMembers:        connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+GroupServiceListMembersProcedure, opts...),
		listUsers:          connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+GroupServiceListUsersProcedure, opts...),
		updateUser:         connect.NewClient[api.UpdateUserRequest, api.UpdateUserResponse](httpClient, baseURL+GroupServiceUpdateUserProcedure, opts...),
		getUserSettings:    connect.NewClient[api.GetUserSettingsRequest, api.GetUserSettingsResponse](httpClient, baseURL+GroupServiceGetUserSettingsProcedure, opts...),
		updateUserSettings: connect.NewClient[api.UpdateUserSettingsRequest, api.UpdateUserSettingsResponse](httpClient, baseURL+GroupServiceUpdateUserSettingsProcedure, opts...),
		addFriend:          connect.NewClient[api.AddFriendRequest, api.AddFriendResponse](httpClient, baseURL+GroupServiceAddFriendProcedure, opts...),
		removeFriend:       connect.NewClient[api.RemoveFriendRequest, api.RemoveFriendResponse](httpClient, baseURL+GroupServiceRemoveFriendProcedure, opts...),
		listFriends:        connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+GroupServiceListFriendsProcedure, opts...),
	}
}

func (c *groupServiceClient) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListUserGroups(ctx context.Context, req *connect.Request[api.ListUserGroupsRequest]) (*connect.Response[api.ListUserGroupsResponse], error) {
	return c.listUserGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	return c.updateUser.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetUserSettings(ctx context.Context, req *connect.Request[api.GetUserSettingsRequest]) (*connect.Response[api.GetUserSettingsResponse], error) {
	return c.getUserSettings.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateUserSettings(ctx context.Context, req *connect.Request[api.UpdateUserSettingsRequest]) (*connect.Response[api.UpdateUserSettingsResponse], error) {
	return c.updateUserSettings.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	return c.removeFriend.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}
