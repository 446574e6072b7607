package main

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	chars     = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	keyLength = 63
)

var errKeyNotFound = errors.New("api key not found")

// keyOwner is the osu! account an api key was issued to
type keyOwner struct {
	ID       int64
	Username string
}

func randomString(length int) (string, error) {
	out := make([]byte, 0, length)
	buf := make([]byte, length)

	// bytes past the last full multiple of len(chars) would skew the distribution
	cutoff := byte(256 - 256%len(chars))
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= cutoff {
				continue
			}
			out = append(out, chars[int(b)%len(chars)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

func keyToUser(key string, db *sql.DB) (keyOwner, error) {
	var owner keyOwner
	err := db.QueryRow("SELECT id, username FROM api_keys WHERE api_key = $1 LIMIT 1", key).Scan(&owner.ID, &owner.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return owner, errKeyNotFound
	}
	if err != nil {
		return owner, fmt.Errorf("error querying database. %w", err)
	}
	return owner, nil
}

func keyExists(key string, db *sql.DB) (bool, error) {
	var keyCount int
	err := db.QueryRow("SELECT COUNT(*) FROM api_keys WHERE api_key = $1", key).Scan(&keyCount)
	if err != nil {
		return false, fmt.Errorf("error checking database. %w", err)
	}

	return keyCount == 1, nil
}

func userExists(id int64, db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM api_keys WHERE id = $1", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking database. %w", err)
	}

	return count == 1, nil
}

func userKey(id int64, db *sql.DB) (string, error) {
	var key string
	err := db.QueryRow("SELECT api_key FROM api_keys WHERE id = $1", id).Scan(&key)
	if err != nil {
		return key, fmt.Errorf("error checking database. %w", err)
	}

	return key, nil
}

func userCount(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM api_keys").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users. %w", err)
	}
	return count, nil
}

func uniqueKey(db *sql.DB) (string, error) {
	for {
		key, err := randomString(keyLength)
		if err != nil {
			return "", fmt.Errorf("error generating random key. %w", err)
		}

		exists, err := keyExists(key, db)
		if err != nil {
			return "", err
		}

		if !exists {
			return key, nil
		}
	}
}

func insertUser(db *sql.DB, owner keyOwner, key string) error {
	_, err := db.Exec("INSERT INTO api_keys (id, username, api_key, created_at) VALUES ($1, $2, $3, $4)",
		owner.ID, owner.Username, key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving user %d. %w", owner.ID, err)
	}
	return nil
}

func updateUsername(db *sql.DB, owner keyOwner) error {
	_, err := db.Exec("UPDATE api_keys SET username = $1 WHERE id = $2", owner.Username, owner.ID)
	if err != nil {
		return fmt.Errorf("error updating user %d. %w", owner.ID, err)
	}
	return nil
}

// registerUser returns the key of a known user, or issues a new one. created reports which.
func registerUser(db *sql.DB, owner keyOwner) (key string, created bool, err error) {
	exists, err := userExists(owner.ID, db)
	if err != nil {
		return "", false, err
	}

	if exists {
		if err := updateUsername(db, owner); err != nil {
			return "", false, err
		}
		key, err := userKey(owner.ID, db)
		return key, false, err
	}

	key, err = uniqueKey(db)
	if err != nil {
		return "", false, err
	}
	if err := insertUser(db, owner, key); err != nil {
		return "", false, err
	}
	return key, true, nil
}
