package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream/pkg/sessions"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORAGE", "memory")
	t.Setenv("REDIS_ADDR", "")

	out := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(out)
	root.SetArgs([]string{"token", "--env-file", "testdata/missing.env", "--subject", "ci"})
	require.NoError(t, root.Execute())

	token := bytes.TrimSpace(out.Bytes())
	p, err := sessions.NewManager("cli-secret", nil).Authenticate("Bearer " + string(token))
	require.NoError(t, err)
	assert.Equal(t, "ci", p.Subject)
}

func TestRootRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"token", "--env-file", "testdata/missing.env"})
	assert.Error(t, root.Execute())
}
