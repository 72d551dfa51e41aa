package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
)

func ptr[T any](v T) *T { return &v }

func ids(users []*models.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.manager.UpdateUser(ctx, f.a.ID, UserInput{Name: " Asha R ", Email: "Asha.R@Example.com", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", user.Name)
	assert.Equal(t, "asha.r@example.com", user.Email)
	assert.True(t, user.CreatedAt.Equal(f.a.CreatedAt))

	_, err = f.manager.UpdateUser(ctx, f.a.ID, UserInput{Name: "Asha", Email: "BILAL@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = f.manager.UpdateUser(ctx, f.a.ID, UserInput{Name: "", Email: "asha@example.com"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.manager.UpdateUser(ctx, 9999, UserInput{Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := f.manager.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.a.ID, f.b.ID, f.c.ID}, ids(users))
	assert.Equal(t, "Asha R", users[0].Name)
}

func TestFriends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	friend, err := f.manager.AddFriend(ctx, f.a.ID, f.b.ID)
	require.NoError(t, err)
	assert.Equal(t, f.b.ID, friend.ID)

	_, err = f.manager.AddFriend(ctx, f.b.ID, f.a.ID)
	assert.ErrorIs(t, err, ErrDuplicateFriend)

	_, err = f.manager.AddFriend(ctx, f.a.ID, f.a.ID)
	assert.ErrorIs(t, err, ErrSameParty)

	_, err = f.manager.AddFriend(ctx, f.a.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	friends, err := f.manager.Friends(ctx, f.b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.a.ID}, ids(friends))

	// Either side can end the friendship, any number of times.
	require.NoError(t, f.manager.RemoveFriend(ctx, f.b.ID, f.a.ID))
	require.NoError(t, f.manager.RemoveFriend(ctx, f.a.ID, f.b.ID))

	friends, err = f.manager.Friends(ctx, f.a.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	_, err = f.manager.Friends(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st, err := f.manager.Settings(ctx, f.a.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(f.a.ID), st)

	st, err = f.manager.UpdateSettings(ctx, f.a.ID, SettingsInput{
		Theme:              ptr("Dark"),
		Currency:           ptr("inr"),
		Timezone:           ptr("Asia/Kolkata"),
		EmailNotifications: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", st.Theme)
	assert.Equal(t, "INR", st.Currency)
	assert.False(t, st.EmailNotifications)
	assert.Equal(t, "equal", st.DefaultSplitMode, "untouched fields keep their value")

	st, err = f.manager.UpdateSettings(ctx, f.a.ID, SettingsInput{DefaultSplitMode: ptr("percent")})
	require.NoError(t, err)
	assert.Equal(t, "INR", st.Currency)

	got, err := f.manager.Settings(ctx, f.a.ID)
	require.NoError(t, err)
	assert.Equal(t, "percent", got.DefaultSplitMode)
	assert.Equal(t, "Asia/Kolkata", got.Timezone)
	assert.False(t, got.UpdatedAt.IsZero())

	invalid := []SettingsInput{
		{Theme: ptr("purple")},
		{Currency: ptr("rupees")},
		{Timezone: ptr("Mars/Olympus")},
		{Timezone: ptr("")},
		{Language: ptr("  ")},
		{DefaultSplitMode: ptr("random")},
	}
	for _, in := range invalid {
		_, err := f.manager.UpdateSettings(ctx, f.a.ID, in)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	_, err = f.manager.UpdateSettings(ctx, 9999, SettingsInput{Theme: ptr("dark")})
	assert.ErrorIs(t, err, ErrNotFound)
}
