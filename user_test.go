package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	a, err := randomString(keyLength)
	if err != nil {
		t.Fatalf("randomString: %v", err)
	}
	b, err := randomString(keyLength)
	if err != nil {
		t.Fatalf("randomString: %v", err)
	}

	if len(a) != keyLength || len(b) != keyLength {
		t.Fatalf("lengths %d %d, want %d", len(a), len(b), keyLength)
	}
	if a == b {
		t.Fatalf("two keys are equal")
	}
	for _, r := range a {
		if !strings.ContainsRune(chars, r) {
			t.Fatalf("unexpected character %q in %s", r, a)
		}
	}
}

func TestRegisterUser(t *testing.T) {
	db := testDB(t)

	key, created, err := registerUser(db, keyOwner{ID: 11903239, Username: "flubb 4"})
	if err != nil {
		t.Fatalf("registerUser: %v", err)
	}
	if !created || len(key) != keyLength {
		t.Fatalf("expected a new %d char key, got %q (created %t)", keyLength, key, created)
	}

	owner, err := keyToUser(key, db)
	if err != nil {
		t.Fatalf("keyToUser: %v", err)
	}
	if owner.ID != 11903239 || owner.Username != "flubb 4" {
		t.Fatalf("unexpected owner: %+v", owner)
	}

	again, created, err := registerUser(db, keyOwner{ID: 11903239, Username: "flubb 5"})
	if err != nil {
		t.Fatalf("registerUser: %v", err)
	}
	if created || again != key {
		t.Fatalf("known user got a new key: %q (created %t)", again, created)
	}
	if owner, _ := keyToUser(key, db); owner.Username != "flubb 5" {
		t.Fatalf("username not updated: %+v", owner)
	}

	if n, err := userCount(db); err != nil || n != 1 {
		t.Fatalf("userCount = %d, %v", n, err)
	}
}

func TestKeyLookups(t *testing.T) {
	db := testDB(t)

	if _, err := keyToUser("nope", db); !errors.Is(err, errKeyNotFound) {
		t.Fatalf("expected errKeyNotFound, got %v", err)
	}

	if err := insertUser(db, keyOwner{ID: 2, Username: "peppy"}, "fixed-key"); err != nil {
		t.Fatalf("insertUser: %v", err)
	}
	if exists, err := keyExists("fixed-key", db); err != nil || !exists {
		t.Fatalf("keyExists = %t, %v", exists, err)
	}
	if exists, err := userExists(3, db); err != nil || exists {
		t.Fatalf("userExists(3) = %t, %v", exists, err)
	}
	if key, err := userKey(2, db); err != nil || key != "fixed-key" {
		t.Fatalf("userKey = %q, %v", key, err)
	}

	if err := insertUser(db, keyOwner{ID: 3, Username: "dup"}, "fixed-key"); err == nil {
		t.Fatalf("duplicate key accepted")
	}
}

func TestOpenDatabaseRejectsDriver(t *testing.T) {
	if _, err := openDatabase(databaseConfig{Driver: "mysql", Dsn: "x"}); err == nil {
		t.Fatalf("unsupported driver accepted")
	}
}
