// Package api defines the request and response messages of the splitter.v1
// services. Messages travel as JSON; amounts are decimal strings.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the wire form of a registered user.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSettings is the wire form of a user's preferences. UpdatedAt is
// omitted for defaults that were never saved.
type UserSettings struct {
	UserID               int64      `json:"user_id"`
	Theme                string     `json:"theme"`
	Language             string     `json:"language"`
	Currency             string     `json:"currency"`
	Timezone             string     `json:"timezone"`
	EmailNotifications   bool       `json:"email_notifications"`
	PushNotifications    bool       `json:"push_notifications"`
	DefaultSplitMode     string     `json:"default_split_mode"`
	DefaultCategory      string     `json:"default_category"`
	DefaultPaymentMethod string     `json:"default_payment_method"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// Group is the wire form of a group and its current members.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	MemberIDs   []int64   `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership links a user to a group.
type Membership struct {
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Split is one user's share of an expense.
type Split struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Share  decimal.Decimal `json:"share"`
}

// Expense is the wire form of an expense. PaidByName is joined on read.
type Expense struct {
	ID          int64           `json:"id"`
	GroupID     *int64          `json:"group_id,omitempty"`
	PaidBy      int64           `json:"paid_by"`
	PaidByName  string          `json:"paid_by_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Splits      []Split         `json:"splits"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Settlement is the wire form of a payment between two members.
type Settlement struct {
	ID        int64           `json:"id"`
	GroupID   int64           `json:"group_id"`
	PaidBy    int64           `json:"paid_by"`
	PaidTo    int64           `json:"paid_to"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// MemberBalance is one user's net balance with the totals behind it.
// Positive NetBalance means the user is owed money.
type MemberBalance struct {
	UserID     int64           `json:"user_id"`
	Name       string          `json:"name,omitempty"`
	NetBalance decimal.Decimal `json:"net_balance"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	SettledOut decimal.Decimal `json:"settled_out"`
	SettledIn  decimal.Decimal `json:"settled_in"`
}

// ActivityItem is one row of a user's activity feed.
type ActivityItem struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Flow      string          `json:"flow"`
	GroupID   *int64          `json:"group_id,omitempty"`
	Group     string          `json:"group"`
	Details   string          `json:"details"`
	Date      time.Time       `json:"date"`
}

// Split modes accepted by CreateExpenseRequest.
const (
	SplitModeExact   = "exact"
	SplitModeEqual   = "equal"
	SplitModeWeights = "weights"
	SplitModePercent = "percent"
)

// SplitSpec names a participant of a new expense. Value is read according
// to the request's split mode: the exact share, a relative weight, or a
// percentage. It is ignored for equal splits.
type SplitSpec struct {
	UserID int64           `json:"user_id"`
	Value  decimal.Decimal `json:"value"`
}

// GroupService messages.

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	UserID int64 `json:"user_id"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type UpdateUserRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

type UpdateUserResponse struct {
	User *User `json:"user"`
}

type GetUserSettingsRequest struct {
	UserID int64 `json:"user_id"`
}

type GetUserSettingsResponse struct {
	Settings *UserSettings `json:"settings"`
}

// UpdateUserSettingsRequest changes only the fields that are present.
type UpdateUserSettingsRequest struct {
	UserID               int64   `json:"user_id"`
	Theme                *string `json:"theme,omitempty"`
	Language             *string `json:"language,omitempty"`
	Currency             *string `json:"currency,omitempty"`
	Timezone             *string `json:"timezone,omitempty"`
	EmailNotifications   *bool   `json:"email_notifications,omitempty"`
	PushNotifications    *bool   `json:"push_notifications,omitempty"`
	DefaultSplitMode     *string `json:"default_split_mode,omitempty"`
	DefaultCategory      *string `json:"default_category,omitempty"`
	DefaultPaymentMethod *string `json:"default_payment_method,omitempty"`
}

type UpdateUserSettingsResponse struct {
	Settings *UserSettings `json:"settings"`
}

type AddFriendRequest struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
}

type AddFriendResponse struct {
	Friend *User `json:"friend"`
}

type RemoveFriendRequest struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
}

type RemoveFriendResponse struct{}

type ListFriendsRequest struct {
	UserID int64 `json:"user_id"`
}

type ListFriendsResponse struct {
	Friends []*User `json:"friends"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   int64  `json:"created_by"`
	// MemberIDs are added alongside the creator in the same write.
	MemberIDs []int64 `json:"member_ids,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID int64 `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListUserGroupsRequest struct {
	UserID int64 `json:"user_id"`
}

type ListUserGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}

type AddMemberResponse struct {
	Membership *Membership `json:"membership"`
}

type RemoveMemberRequest struct {
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}

type RemoveMemberResponse struct{}

type ListMembersRequest struct {
	GroupID int64 `json:"group_id"`
}

type ListMembersResponse struct {
	Members []*User `json:"members"`
}

// LedgerService messages.

type CreateExpenseRequest struct {
	GroupID     *int64          `json:"group_id,omitempty"`
	PaidBy      int64           `json:"paid_by"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	// SplitMode defaults to exact.
	SplitMode string      `json:"split_mode,omitempty"`
	Splits    []SplitSpec `json:"splits"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListGroupExpensesRequest struct {
	GroupID int64 `json:"group_id"`
}

type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type CreateSettlementRequest struct {
	GroupID int64           `json:"group_id"`
	PaidBy  int64           `json:"paid_by"`
	PaidTo  int64           `json:"paid_to"`
	Amount  decimal.Decimal `json:"amount"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	SettlementID int64 `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

type ListGroupSettlementsRequest struct {
	GroupID int64 `json:"group_id"`
}

type ListGroupSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type ListUserSettlementsRequest struct {
	UserID int64 `json:"user_id"`
}

type ListUserSettlementsResponse struct {
	Paid     []*Settlement `json:"paid"`
	Received []*Settlement `json:"received"`
}

type GetGroupBalancesRequest struct {
	GroupID int64 `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
}

type GetPersonalBalancesRequest struct {
	UserID int64 `json:"user_id"`
}

type GetPersonalBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
}

type GetActivityRequest struct {
	UserID int64 `json:"user_id"`
}

type GetActivityResponse struct {
	Items []*ActivityItem `json:"items"`
}
