// Package pass keeps the session slot in the user's pass(1) store so the
// bearer token is encrypted at rest with their GPG key.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
)

// ErrUnavailable means pass cannot be used at all on this machine: the
// binary is missing or the store was never initialized.
var ErrUnavailable = errors.New("pass store unavailable")

const binaryName = "pass"

var (
	missingEntryMarkers  = []string{"is not in the password store"}
	uninitializedMarkers = []string{"password store is empty", "try \"pass init\"", "you must run: pass init"}
	errInvalidKey        = errors.New("invalid pass entry name")
)

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	entry, err := s.prepare(ctx, key)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", entry)
	if err != nil {
		return classify("put", entry, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.prepare(ctx, key)
	if err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", entry)
	if err != nil {
		return "", classify("get", entry, err, stderr)
	}

	return strings.TrimRight(stdout, "\r\n"), nil
}

// Delete is idempotent: a missing entry is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	entry, err := s.prepare(ctx, key)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", entry)
	if err == nil {
		return nil
	}

	classified := classify("delete", entry, err, stderr)
	if errors.Is(classified, domain.ErrSecretNotFound) {
		return nil
	}
	return classified
}

func (s *Store) prepare(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry := strings.Trim(strings.TrimSpace(key), "/")
	if entry == "" || path.Clean(entry) != entry || strings.HasPrefix(entry, "..") {
		return "", fmt.Errorf("%w %q", errInvalidKey, key)
	}

	return entry, nil
}

func runPass(ctx context.Context, input string, args ...string) (string, string, error) {
	bin, err := exec.LookPath(binaryName)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// classify maps pass failures onto the sentinels the session store and the
// chain backend act on.
func classify(op, entry string, err error, stderr string) error {
	lowered := strings.ToLower(stderr)
	switch {
	case errors.Is(err, ErrUnavailable):
		return fmt.Errorf("pass %s %q: %w", op, entry, ErrUnavailable)
	case containsAny(lowered, missingEntryMarkers):
		return fmt.Errorf("pass %s %q: %w", op, entry, domain.ErrSecretNotFound)
	case containsAny(lowered, uninitializedMarkers):
		return fmt.Errorf("pass %s %q: %w: %s", op, entry, ErrUnavailable, stderr)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
	}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
