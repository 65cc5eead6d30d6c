package menu

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/market"

	_ "github.com/mattn/go-sqlite3"
)

func setupMenu(t *testing.T, script string) (*Menu, *database.Service, *bytes.Buffer, func()) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	service, err := database.NewServiceWithDB(db)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	var out bytes.Buffer
	m := New(service, market.New(""), "", strings.NewReader(script), &out)
	return m, service, &out, func() { db.Close() }
}

func TestRunRegisterUserThenExit(t *testing.T) {
	script := strings.Join([]string{
		"1",                   // users submenu
		"1",                   // register
		"7",                   // id
		"Donald Duck",         // name
		"donald@example.com",  // email
		"quack",               // password
		"0",                   // back
		"0",                   // exit
	}, "\n") + "\n"

	m, service, out, cleanup := setupMenu(t, script)
	defer cleanup()

	m.Run(context.Background())

	user, err := service.GetUserById(context.Background(), 7)
	if err != nil {
		t.Fatalf("Failed to look up user: %v", err)
	}
	if user == nil || user.Email != "donald@example.com" {
		t.Fatalf("Expected registered user, got %+v", user)
	}
	if !strings.Contains(out.String(), "Registered") {
		t.Errorf("Expected registration confirmation, got:\n%s", out.String())
	}
}

func TestRunMalformedInputContinues(t *testing.T) {
	script := strings.Join([]string{
		"banana", // unknown root option
		"1",      // users submenu
		"2",      // find by id
		"xyz",    // not a number
		"0",      // back
		"0",      // exit
	}, "\n") + "\n"

	m, _, out, cleanup := setupMenu(t, script)
	defer cleanup()

	m.Run(context.Background())

	if !strings.Contains(out.String(), `Unknown option "banana"`) {
		t.Errorf("Expected unknown option report, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `Not a whole number: "xyz"`) {
		t.Errorf("Expected malformed number report, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Bye.") {
		t.Errorf("Expected clean exit after malformed input, got:\n%s", out.String())
	}
}

func TestDeleteRequiresConfirmationWord(t *testing.T) {
	script := strings.Join([]string{
		"1",                 // users submenu
		"1",                 // register
		"8",                 // id
		"Della Duck",        // name
		"della@example.com", // email
		"quack",             // password
		"5",                 // delete
		"8",                 // id
		"no",                // wrong confirmation word
		"0",                 // back
		"0",                 // exit
	}, "\n") + "\n"

	m, service, out, cleanup := setupMenu(t, script)
	defer cleanup()

	m.Run(context.Background())

	user, err := service.GetUserById(context.Background(), 8)
	if err != nil {
		t.Fatalf("Failed to look up user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected user to survive an unconfirmed delete")
	}
	if !strings.Contains(out.String(), "Delete cancelled.") {
		t.Errorf("Expected cancellation message, got:\n%s", out.String())
	}
}
