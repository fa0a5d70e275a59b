package cmd

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func runHashPassword(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	hashPasswordValue = ""
	hashPasswordCost = bcrypt.DefaultCost

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"hash-password"}, args...))
	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestHashPassword_FromFlag(t *testing.T) {
	hash, err := runHashPassword(t, "", "--password", "kiln-4-ever", "--cost", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("kiln-4-ever")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != 4 {
		t.Fatalf("expected cost 4, got %d", cost)
	}
}

func TestHashPassword_FromStdin(t *testing.T) {
	hash, err := runHashPassword(t, "clinker\n", "--cost", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("clinker")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := runHashPassword(t, "\n", "--cost", "4"); err == nil {
		t.Fatalf("expected error for an empty password")
	}
}
