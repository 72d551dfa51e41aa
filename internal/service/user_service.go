package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/internal/events"
	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
)

// ListUsers lists every registered user, ordered by ID.
func (s *GroupService) ListUsers(ctx context.Context, _ *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.manager.ListUsers(ctx)
	if err != nil {
		return nil, fail(ctx, "ListUsers", err)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: toAPIUsers(users)}), nil
}

// UpdateUser replaces a user's name, email and phone.
func (s *GroupService) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UpdateUserResponse], error) {
	slog.InfoContext(ctx, "UpdateUser request received", "user_id", req.Msg.UserID)

	user, err := s.manager.UpdateUser(ctx, req.Msg.UserID, ledger.UserInput{
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
		Phone: req.Msg.Phone,
	})
	if err != nil {
		return nil, fail(ctx, "UpdateUser", err, "user_id", req.Msg.UserID)
	}
	publish(ctx, s.publisher, events.New(events.UserUpdated, nil, user.ID))

	return connect.NewResponse(&api.UpdateUserResponse{User: toAPIUser(user)}), nil
}

// GetUserSettings returns a user's settings, falling back to the defaults.
func (s *GroupService) GetUserSettings(ctx context.Context, req *connect.Request[api.GetUserSettingsRequest]) (*connect.Response[api.GetUserSettingsResponse], error) {
	st, err := s.manager.Settings(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "GetUserSettings", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.GetUserSettingsResponse{Settings: toAPISettings(st)}), nil
}

// UpdateUserSettings changes the settings fields present in the request.
func (s *GroupService) UpdateUserSettings(ctx context.Context, req *connect.Request[api.UpdateUserSettingsRequest]) (*connect.Response[api.UpdateUserSettingsResponse], error) {
	slog.InfoContext(ctx, "UpdateUserSettings request received", "user_id", req.Msg.UserID)

	msg := req.Msg
	st, err := s.manager.UpdateSettings(ctx, msg.UserID, ledger.SettingsInput{
		Theme:                msg.Theme,
		Language:             msg.Language,
		Currency:             msg.Currency,
		Timezone:             msg.Timezone,
		EmailNotifications:   msg.EmailNotifications,
		PushNotifications:    msg.PushNotifications,
		DefaultSplitMode:     msg.DefaultSplitMode,
		DefaultCategory:      msg.DefaultCategory,
		DefaultPaymentMethod: msg.DefaultPaymentMethod,
	})
	if err != nil {
		return nil, fail(ctx, "UpdateUserSettings", err, "user_id", msg.UserID)
	}
	publish(ctx, s.publisher, events.New(events.SettingsUpdated, nil, st.UserID))

	return connect.NewResponse(&api.UpdateUserSettingsResponse{Settings: toAPISettings(st)}), nil
}

// AddFriend makes two users friends of each other.
func (s *GroupService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	slog.InfoContext(ctx, "AddFriend request received", "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)

	friend, err := s.manager.AddFriend(ctx, req.Msg.UserID, req.Msg.FriendID)
	if err != nil {
		return nil, fail(ctx, "AddFriend", err, "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)
	}
	publish(ctx, s.publisher, events.New(events.FriendAdded, nil, req.Msg.UserID))

	return connect.NewResponse(&api.AddFriendResponse{Friend: toAPIUser(friend)}), nil
}

// RemoveFriend ends a friendship in both directions.
func (s *GroupService) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	slog.InfoContext(ctx, "RemoveFriend request received", "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)

	if err := s.manager.RemoveFriend(ctx, req.Msg.UserID, req.Msg.FriendID); err != nil {
		return nil, fail(ctx, "RemoveFriend", err, "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)
	}
	publish(ctx, s.publisher, events.New(events.FriendRemoved, nil, req.Msg.UserID))

	return connect.NewResponse(&api.RemoveFriendResponse{}), nil
}

// ListFriends lists a user's friends, ordered by ID.
func (s *GroupService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	friends, err := s.manager.Friends(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "ListFriends", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: toAPIUsers(friends)}), nil
}
