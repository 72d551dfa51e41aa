package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/khushthecoder/Expense-Splitter/internal/events"
	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/internal/storage/sqlite"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
	"github.com/khushthecoder/Expense-Splitter/pkg/api/apiconnect"
)

type testServer struct {
	groups apiconnect.GroupServiceClient
	ledger apiconnect.LedgerServiceClient
	events *events.Memory
}

// setupTestServer serves both services over a fresh database.
func setupTestServer(t *testing.T, opts ...ledger.Option) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	manager := ledger.NewManager(store, opts...)
	published := &events.Memory{}

	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(manager, published))
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(NewLedgerService(manager, published))

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		groups: apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		events: published,
	}
}

func (ts *testServer) createUser(t *testing.T, name string) *api.User {
	t.Helper()
	resp, err := ts.groups.CreateUser(context.Background(), connect.NewRequest(&api.CreateUserRequest{
		Name:  name,
		Email: name + "@example.com",
	}))
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return resp.Msg.User
}

func (ts *testServer) createGroup(t *testing.T, name string, creator *api.User, members ...*api.User) *api.Group {
	t.Helper()
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	resp, err := ts.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:      name,
		CreatedBy: creator.ID,
		MemberIDs: ids,
	}))
	if err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", name, err)
	}
	return resp.Msg.Group
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func assertKind(t *testing.T, err error, want ledger.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindFromError(err); got != want {
		t.Errorf("expected error kind %q, got %q (%v)", want, got, err)
	}
}

func balanceOf(balances []*api.MemberBalance, userID int64) decimal.Decimal {
	for _, b := range balances {
		if b.UserID == userID {
			return b.NetBalance
		}
	}
	return decimal.Zero
}
