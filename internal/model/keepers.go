package model

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// KeeperSeparator joins keeper names in the encrypted plaintext; names may not contain it
const KeeperSeparator = "/"

// Keeper is a player a team has chosen to retain, priced at this year's cost
type Keeper struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// KeeperSelection is a team's candidate keeper list
// Exists only for the lifetime of a submission
type KeeperSelection struct {
	Team    string
	Players []Keeper
}

// Names returns the keeper names in selection order
func (s KeeperSelection) Names() []string {
	names := make([]string, len(s.Players))
	for i, k := range s.Players {
		names[i] = k.Name
	}
	return names
}

// SerializeKeepers produces the plaintext that gets encrypted for a team
func SerializeKeepers(names []string) string {
	return strings.Join(names, KeeperSeparator)
}

// ParseKeepers is the inverse of SerializeKeepers
// Empty segments are dropped, so an empty plaintext means no keepers
func ParseKeepers(plaintext string) []string {
	keepers := []string{}
	for _, name := range strings.Split(plaintext, KeeperSeparator) {
		if name != "" {
			keepers = append(keepers, name)
		}
	}
	return keepers
}

// EncryptedKeeperRecord is a team's persisted, password-encrypted keeper list
type EncryptedKeeperRecord struct {
	IV         []byte
	Ciphertext []byte
}

// String encodes the record as hex(iv) + ":" + hex(ciphertext)
func (r EncryptedKeeperRecord) String() string {
	return hex.EncodeToString(r.IV) + ":" + hex.EncodeToString(r.Ciphertext)
}

// ParseEncryptedKeeperRecord decodes the hex(iv):hex(ciphertext) form
func ParseEncryptedKeeperRecord(blob string) (EncryptedKeeperRecord, error) {
	ivHex, ctHex, ok := strings.Cut(strings.TrimSpace(blob), ":")
	if !ok {
		return EncryptedKeeperRecord{}, fmt.Errorf("%w: missing separator", ErrDecryption)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return EncryptedKeeperRecord{}, fmt.Errorf("%w: bad iv encoding", ErrDecryption)
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return EncryptedKeeperRecord{}, fmt.Errorf("%w: bad ciphertext encoding", ErrDecryption)
	}
	return EncryptedKeeperRecord{IV: iv, Ciphertext: ct}, nil
}

// PasswordLogEntry is one line of the append-only password log
// Written on every successful save and never read back
type PasswordLogEntry struct {
	Timestamp time.Time
	Team      string
	Password  string
}

// Line renders the entry without a trailing newline
func (e PasswordLogEntry) Line() string {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	return fmt.Sprintf("%s - %s used password '%s'", ts, e.Team, e.Password)
}
