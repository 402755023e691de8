package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRootCommands(t *testing.T) {
	cmd := rootCmd()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "play", "hash-password"})
}

func TestHashPasswordArg(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hash-password", "hunter2"})
	require.NoError(t, cmd.Execute())

	h := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("hunter2")))
}

func TestHashPasswordStdin(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetArgs([]string{"hash-password"})
	require.NoError(t, cmd.Execute())

	h := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("s3cret")))
}

func TestHashPasswordEmpty(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"hash-password"})
	assert.EqualError(t, cmd.Execute(), "empty password")
}

func TestReadLine(t *testing.T) {
	line, err := readLine(strings.NewReader("abc\r\nrest"))
	require.NoError(t, err)
	assert.Equal(t, "abc", line)
}
